package kvstore

import (
	"time"

	"github.com/desertthunder/lectern/internal/models"
)

// Record types define the on-disk JSON layout for each collection. They are
// converted to and from the entity types at the repository boundary so the
// rest of the app never sees the wire shape.

type userRecord struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r userRecord) id() int64 { return r.ID }

func (r userRecord) toModel() *models.User {
	user := models.NewUser(r.Email, r.Username, r.PasswordHash)
	user.SetID(r.ID)
	user.SetCreatedAt(r.CreatedAt)
	return user
}

type courseRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (r courseRecord) id() int64 { return r.ID }

func (r courseRecord) toModel() *models.Course {
	course := models.NewCourse(r.UserID, r.Name)
	course.SetID(r.ID)
	course.SetCreatedAt(r.CreatedAt)
	return course
}

type lectureRecord struct {
	ID            int64     `json:"id"`
	CourseID      int64     `json:"course_id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	LectureNumber int       `json:"lecture_number"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r lectureRecord) id() int64 { return r.ID }

func (r lectureRecord) toModel() *models.Lecture {
	lecture := models.NewLecture(r.CourseID, r.UserID, r.Title, r.LectureNumber)
	lecture.SetID(r.ID)
	lecture.SetCreatedAt(r.CreatedAt)
	return lecture
}

type transcriptRecord struct {
	ID        int64      `json:"id"`
	LectureID int64      `json:"lecture_id"`
	UserID    int64      `json:"user_id"`
	Kind      string     `json:"kind,omitempty"`
	Content   string     `json:"content"`
	Timestamp int64      `json:"timestamp"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (r transcriptRecord) id() int64 { return r.ID }

// toModel migrates legacy prefixed content into the explicit kind on the way
// out, same as the relational backend's scan path.
func (r transcriptRecord) toModel() *models.Transcript {
	kind, content := models.NormalizeKind(r.Kind, r.Content)

	transcript := models.NewTranscript(r.LectureID, r.UserID, kind, content, r.Timestamp)
	transcript.SetID(r.ID)
	transcript.SetCreatedAt(r.CreatedAt)
	transcript.SetUpdatedAt(r.UpdatedAt)
	return transcript
}
