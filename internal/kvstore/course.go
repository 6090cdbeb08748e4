package kvstore

import (
	"fmt"
	"sort"

	"github.com/desertthunder/lectern/internal/models"
)

// CourseRepository implements [models.CourseRepository] over the courses collection.
type CourseRepository struct {
	s *Store
}

// Create appends a new course record and returns its assigned id
func (r *CourseRepository) Create(userID int64, name string) (int64, error) {
	course := models.NewCourse(userID, name)
	if err := course.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[courseRecord](r.s, coursesFile)
	if err != nil {
		return 0, err
	}

	record := courseRecord{
		ID:        nextID(records),
		UserID:    userID,
		Name:      name,
		CreatedAt: course.CreatedAt(),
	}

	if err := writeCollection(r.s, coursesFile, append(records, record)); err != nil {
		return 0, err
	}

	return record.ID, nil
}

// ListByUser retrieves the user's courses, newest first by default or by name
// when sort is [models.SortByName]
func (r *CourseRepository) ListByUser(userID int64, sortBy models.CourseSort) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[courseRecord](r.s, coursesFile)
	if err != nil {
		return nil, err
	}

	var courses []*models.Course
	for _, rec := range records {
		if rec.UserID == userID {
			courses = append(courses, rec.toModel())
		}
	}

	if sortBy == models.SortByName {
		sort.Slice(courses, func(i, j int) bool {
			return courses[i].Name() < courses[j].Name()
		})
	} else {
		sort.Slice(courses, func(i, j int) bool {
			if courses[i].CreatedAt().Equal(courses[j].CreatedAt()) {
				return courses[i].ID() > courses[j].ID()
			}
			return courses[i].CreatedAt().After(courses[j].CreatedAt())
		})
	}

	return courses, nil
}

// Delete removes the course and everything beneath it. The three collections
// are rewritten child-first so a failure partway through never leaves orphaned
// rows referencing a deleted parent.
func (r *CourseRepository) Delete(courseID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	courses, err := readCollection[courseRecord](r.s, coursesFile)
	if err != nil {
		return err
	}

	owned := false
	for _, rec := range courses {
		if rec.ID == courseID && rec.UserID == userID {
			owned = true
			break
		}
	}
	if !owned {
		return nil
	}

	lectures, err := readCollection[lectureRecord](r.s, lecturesFile)
	if err != nil {
		return err
	}

	doomed := map[int64]bool{}
	var keptLectures []lectureRecord
	for _, rec := range lectures {
		if rec.CourseID == courseID && rec.UserID == userID {
			doomed[rec.ID] = true
			continue
		}
		keptLectures = append(keptLectures, rec)
	}

	transcripts, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return err
	}

	var keptTranscripts []transcriptRecord
	for _, rec := range transcripts {
		if doomed[rec.LectureID] && rec.UserID == userID {
			continue
		}
		keptTranscripts = append(keptTranscripts, rec)
	}

	if err := writeCollection(r.s, transcriptsFile, keptTranscripts); err != nil {
		return err
	}
	if err := writeCollection(r.s, lecturesFile, keptLectures); err != nil {
		return err
	}

	var keptCourses []courseRecord
	for _, rec := range courses {
		if rec.ID == courseID && rec.UserID == userID {
			continue
		}
		keptCourses = append(keptCourses, rec)
	}

	return writeCollection(r.s, coursesFile, keptCourses)
}

var _ models.CourseRepository = (*CourseRepository)(nil)
