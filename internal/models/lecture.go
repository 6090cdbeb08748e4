package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/lectern/internal/shared"
)

// Lecture is a single session within a course. The owning user id is
// denormalized onto the lecture for direct filtering.
type Lecture struct {
	id            int64
	courseID      int64
	userID        int64
	title         string
	lectureNumber int
	createdAt     time.Time
}

// NewLecture creates a Lecture pending persistence.
func NewLecture(courseID, userID int64, title string, lectureNumber int) *Lecture {
	return &Lecture{
		courseID:      courseID,
		userID:        userID,
		title:         title,
		lectureNumber: lectureNumber,
		createdAt:     time.Now(),
	}
}

func (l *Lecture) ID() int64            { return l.id }
func (l *Lecture) CourseID() int64      { return l.courseID }
func (l *Lecture) UserID() int64        { return l.userID }
func (l *Lecture) Title() string        { return l.title }
func (l *Lecture) LectureNumber() int   { return l.lectureNumber }
func (l *Lecture) CreatedAt() time.Time { return l.createdAt }

func (l *Lecture) SetID(id int64)           { l.id = id }
func (l *Lecture) SetCreatedAt(t time.Time) { l.createdAt = t }

// Validate checks the lecture's data before persistence.
func (l *Lecture) Validate() error {
	if l.courseID == 0 {
		return fmt.Errorf("%w: course id", shared.ErrMissingField)
	}
	if l.userID == 0 {
		return fmt.Errorf("%w: user id", shared.ErrMissingField)
	}
	if l.title == "" {
		return fmt.Errorf("%w: lecture title", shared.ErrMissingField)
	}
	return nil
}
