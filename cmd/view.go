package main

import (
	"time"

	"github.com/desertthunder/lectern/internal/models"
)

// JSON output shapes for --json command output.

type userView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID(), Email: u.Email(), Username: u.Username(), CreatedAt: u.CreatedAt()}
}

type courseView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func newCourseView(c *models.Course) courseView {
	return courseView{ID: c.ID(), Name: c.Name(), CreatedAt: c.CreatedAt()}
}

type lectureView struct {
	ID            int64     `json:"id"`
	CourseID      int64     `json:"course_id"`
	Title         string    `json:"title"`
	LectureNumber int       `json:"lecture_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func newLectureView(l *models.Lecture) lectureView {
	return lectureView{
		ID:            l.ID(),
		CourseID:      l.CourseID(),
		Title:         l.Title(),
		LectureNumber: l.LectureNumber(),
		CreatedAt:     l.CreatedAt(),
	}
}

type transcriptView struct {
	ID        int64      `json:"id"`
	LectureID int64      `json:"lecture_id"`
	Kind      string     `json:"kind"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func newTranscriptView(t *models.Transcript) transcriptView {
	return transcriptView{
		ID:        t.ID(),
		LectureID: t.LectureID(),
		Kind:      string(t.Kind()),
		Content:   t.Content(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}
