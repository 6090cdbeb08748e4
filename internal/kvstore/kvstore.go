// package kvstore provides the flat-file persistence layer.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/desertthunder/lectern/internal/models"
)

const (
	usersFile       = "users.json"
	coursesFile     = "courses.json"
	lecturesFile    = "lectures.json"
	transcriptsFile = "transcripts.json"
)

// Store implements [models.Store] over per-collection JSON files in a single
// data directory.
type Store struct {
	dir string
	mu  sync.Mutex

	users       *UserRepository
	courses     *CourseRepository
	lectures    *LectureRepository
	transcripts *TranscriptRepository
}

// Open creates the data directory if needed and returns a ready Store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{dir: dir}
	s.users = &UserRepository{s: s}
	s.courses = &CourseRepository{s: s}
	s.lectures = &LectureRepository{s: s}
	s.transcripts = &TranscriptRepository{s: s}

	return s, nil
}

func (s *Store) Users() models.UserRepository             { return s.users }
func (s *Store) Courses() models.CourseRepository         { return s.courses }
func (s *Store) Lectures() models.LectureRepository       { return s.lectures }
func (s *Store) Transcripts() models.TranscriptRepository { return s.transcripts }

// Close is a no-op; every mutation is flushed to disk before it returns.
func (s *Store) Close() error {
	return nil
}

// readCollection loads the named collection. A missing file reads as an empty
// collection so a fresh data directory needs no initialization step.
func readCollection[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return records, nil
}

// writeCollection rewrites the named collection as a complete snapshot.
func writeCollection[T any](s *Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

// identifiable exposes the id field shared by every record type.
type identifiable interface {
	id() int64
}

// nextID returns one past the collection's current maximum id, so ids stay
// stable across restarts and never reuse a deleted slot within a snapshot.
func nextID[T identifiable](records []T) int64 {
	var max int64
	for _, r := range records {
		if r.id() > max {
			max = r.id()
		}
	}
	return max + 1
}
