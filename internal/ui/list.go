package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lectern/internal/models"
)

var (
	_ list.Item = courseItem{}
	_ list.Item = lectureItem{}
	_ list.Item = transcriptItem{}
)

// courseItem wraps [models.Course] to implement [list.Item].
type courseItem struct {
	course *models.Course
}

func (i courseItem) FilterValue() string { return i.course.Name() }
func (i courseItem) Title() string       { return i.course.Name() }
func (i courseItem) Description() string {
	return fmt.Sprintf("created %s", i.course.CreatedAt().Format("2006-01-02"))
}

// lectureItem wraps [models.Lecture] to implement [list.Item].
type lectureItem struct {
	lecture *models.Lecture
}

func (i lectureItem) FilterValue() string { return i.lecture.Title() }
func (i lectureItem) Title() string       { return i.lecture.Title() }
func (i lectureItem) Description() string {
	if i.lecture.LectureNumber() > 0 {
		return fmt.Sprintf("lecture %d • %s", i.lecture.LectureNumber(), i.lecture.CreatedAt().Format("2006-01-02"))
	}
	return i.lecture.CreatedAt().Format("2006-01-02")
}

// transcriptItem wraps [models.Transcript] to implement [list.Item].
type transcriptItem struct {
	transcript *models.Transcript
}

func (i transcriptItem) FilterValue() string { return i.transcript.Content() }
func (i transcriptItem) Title() string {
	content := i.transcript.Content()
	if runes := []rune(content); len(runes) > 60 {
		content = string(runes[:57]) + "..."
	}
	return content
}
func (i transcriptItem) Description() string {
	return fmt.Sprintf("%s • %s", i.transcript.Kind(), i.transcript.CreatedAt().Format("2006-01-02 15:04"))
}
