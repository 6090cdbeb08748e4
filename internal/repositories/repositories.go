// package repositories provides the relational persistence layer.
package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

// Store implements [models.Store] over a single SQLite connection.
type Store struct {
	db          *sql.DB
	users       *UserRepository
	courses     *CourseRepository
	lectures    *LectureRepository
	transcripts *TranscriptRepository
}

// NewStore wires the per-entity repositories over an open database handle.
// The caller owns migrations; see [Open] for the common path.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		users:       NewUserRepository(db),
		courses:     NewCourseRepository(db),
		lectures:    NewLectureRepository(db),
		transcripts: NewTranscriptRepository(db),
	}
}

// Open opens (creating if necessary) the SQLite database at path and runs
// pending migrations before handing back a ready Store.
func Open(path string) (*Store, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewStore(db), nil
}

func (s *Store) Users() models.UserRepository             { return s.users }
func (s *Store) Courses() models.CourseRepository         { return s.courses }
func (s *Store) Lectures() models.LectureRepository       { return s.lectures }
func (s *Store) Transcripts() models.TranscriptRepository { return s.transcripts }

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
