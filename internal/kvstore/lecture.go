package kvstore

import (
	"fmt"
	"sort"

	"github.com/desertthunder/lectern/internal/models"
)

// LectureRepository implements [models.LectureRepository] over the lectures collection.
type LectureRepository struct {
	s *Store
}

// Create appends a new lecture record and returns its assigned id
func (r *LectureRepository) Create(courseID, userID int64, title string, lectureNumber int) (int64, error) {
	lecture := models.NewLecture(courseID, userID, title, lectureNumber)
	if err := lecture.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[lectureRecord](r.s, lecturesFile)
	if err != nil {
		return 0, err
	}

	record := lectureRecord{
		ID:            nextID(records),
		CourseID:      courseID,
		UserID:        userID,
		Title:         title,
		LectureNumber: lectureNumber,
		CreatedAt:     lecture.CreatedAt(),
	}

	if err := writeCollection(r.s, lecturesFile, append(records, record)); err != nil {
		return 0, err
	}

	return record.ID, nil
}

// ListByCourse retrieves the course's lectures, newest first
func (r *LectureRepository) ListByCourse(courseID, userID int64) ([]*models.Lecture, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[lectureRecord](r.s, lecturesFile)
	if err != nil {
		return nil, err
	}

	var lectures []*models.Lecture
	for _, rec := range records {
		if rec.CourseID == courseID && rec.UserID == userID {
			lectures = append(lectures, rec.toModel())
		}
	}

	sort.Slice(lectures, func(i, j int) bool {
		if lectures[i].CreatedAt().Equal(lectures[j].CreatedAt()) {
			return lectures[i].ID() > lectures[j].ID()
		}
		return lectures[i].CreatedAt().After(lectures[j].CreatedAt())
	})

	return lectures, nil
}

// Delete removes the lecture and its transcripts, children first. A missing or
// foreign lecture id removes nothing and returns nil.
func (r *LectureRepository) Delete(lectureID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lectures, err := readCollection[lectureRecord](r.s, lecturesFile)
	if err != nil {
		return err
	}

	owned := false
	for _, rec := range lectures {
		if rec.ID == lectureID && rec.UserID == userID {
			owned = true
			break
		}
	}
	if !owned {
		return nil
	}

	transcripts, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return err
	}

	var keptTranscripts []transcriptRecord
	for _, rec := range transcripts {
		if rec.LectureID == lectureID && rec.UserID == userID {
			continue
		}
		keptTranscripts = append(keptTranscripts, rec)
	}

	if err := writeCollection(r.s, transcriptsFile, keptTranscripts); err != nil {
		return err
	}

	var keptLectures []lectureRecord
	for _, rec := range lectures {
		if rec.ID == lectureID && rec.UserID == userID {
			continue
		}
		keptLectures = append(keptLectures, rec)
	}

	return writeCollection(r.s, lecturesFile, keptLectures)
}

var _ models.LectureRepository = (*LectureRepository)(nil)
