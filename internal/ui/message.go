package ui

import (
	"github.com/desertthunder/lectern/internal/models"
)

// coursesFetchedMsg carries the result of loading the user's courses.
type coursesFetchedMsg struct {
	courses []*models.Course
	err     error
}

// lecturesFetchedMsg carries the result of loading a course's lectures.
type lecturesFetchedMsg struct {
	lectures []*models.Lecture
	err      error
}

// transcriptsFetchedMsg carries the result of loading a lecture's entries.
type transcriptsFetchedMsg struct {
	transcripts []*models.Transcript
	err         error
}
