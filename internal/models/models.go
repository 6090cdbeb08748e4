// package models defines the data model for the lecture note service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the lecture note service.
// Implementations include User, Course, Lecture, and Transcript.
type Model interface {
	ID() int64            // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// CourseSort selects the ordering for course listings.
type CourseSort string

const (
	SortByDate CourseSort = "date" // creation time, newest first
	SortByName CourseSort = "name" // name, ascending
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	// Create inserts a new user and returns its id.
	// Returns shared.ErrDuplicateEmail if the email is already registered;
	// no state is mutated on failure.
	Create(email, username, passwordHash string) (int64, error)

	// GetByEmail returns the full user row including the password hash.
	// Only the session manager's login path may use it.
	GetByEmail(email string) (*User, error)

	// GetByID returns the public user shape; the password hash is never populated.
	GetByID(id int64) (*User, error)

	// UpdateUsername renames the user and returns the updated public record.
	// Returns shared.ErrNotFound if no such user exists.
	UpdateUsername(id int64, username string) (*User, error)
}

// CourseRepository defines course persistence operations, all scoped to an owning user.
type CourseRepository interface {
	Create(userID int64, name string) (int64, error)
	ListByUser(userID int64, sort CourseSort) ([]*Course, error)

	// Delete removes the course and cascades: every lecture under it and
	// every transcript under those lectures is removed first. Deleting a
	// course that does not exist (or is owned by another user) is a no-op.
	Delete(courseID, userID int64) error
}

// LectureRepository defines lecture persistence operations, scoped to an owning user.
type LectureRepository interface {
	Create(courseID, userID int64, title string, lectureNumber int) (int64, error)
	ListByCourse(courseID, userID int64) ([]*Lecture, error)

	// Delete removes the lecture and its transcripts, children first.
	Delete(lectureID, userID int64) error
}

// TranscriptRepository defines transcript persistence operations, scoped to an owning user.
type TranscriptRepository interface {
	Create(lectureID, userID int64, kind TranscriptKind, content string, timestamp int64) (int64, error)

	// Get returns the transcript with the given (id, userID) pair, or shared.ErrNotFound.
	Get(id, userID int64) (*Transcript, error)

	// ListByLecture returns the lecture's transcripts ordered by creation time, ascending.
	ListByLecture(lectureID, userID int64) ([]*Transcript, error)

	// Update replaces the content of the transcript with the given (id, userID)
	// pair and returns the updated record, or shared.ErrNotFound.
	Update(id, userID int64, content string) (*Transcript, error)

	Delete(id, userID int64) error

	// FindSummary returns the lecture's summary transcript, or shared.ErrNotFound.
	// At most one summary per lecture is a soft invariant maintained by
	// callers via find-or-update; the repository does not enforce it.
	FindSummary(lectureID, userID int64) (*Transcript, error)
}

// Store aggregates the per-entity repositories of one storage backend.
// Both backends are functionally equivalent from the caller's perspective.
type Store interface {
	Users() UserRepository
	Courses() CourseRepository
	Lectures() LectureRepository
	Transcripts() TranscriptRepository
	Close() error
}
