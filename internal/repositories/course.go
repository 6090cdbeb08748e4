package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/lectern/internal/models"
)

// CourseRepository implements [models.CourseRepository] for course persistence.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new [CourseRepository] with the given database connection
func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course for the user and returns its generated id
func (r *CourseRepository) Create(userID int64, name string) (int64, error) {
	course := models.NewCourse(userID, name)
	if err := course.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO courses (user_id, name, created_at) VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, userID, name, course.CreatedAt())
	if err != nil {
		return 0, fmt.Errorf("failed to insert course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// ListByUser retrieves the user's courses, newest first by default or by name
// when sort is [models.SortByName]
func (r *CourseRepository) ListByUser(userID int64, sort models.CourseSort) ([]*models.Course, error) {
	order := "created_at DESC, id DESC"
	if sort == models.SortByName {
		order = "name ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM courses
		WHERE user_id = ?
		ORDER BY %s
	`, order)

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var (
			id        int64
			owner     int64
			name      string
			createdAt time.Time
		)

		if err := rows.Scan(&id, &owner, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}

		course := models.NewCourse(owner, name)
		course.SetID(id)
		course.SetCreatedAt(createdAt)
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return courses, nil
}

// Delete removes the course and everything beneath it, transcripts first so no
// orphaned rows survive a partial failure. A course id that does not exist or
// belongs to another user deletes nothing and returns nil.
func (r *CourseRepository) Delete(courseID, userID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM transcripts
		WHERE user_id = ? AND lecture_id IN (
			SELECT id FROM lectures WHERE course_id = ? AND user_id = ?
		)
	`, userID, courseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transcripts: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM lectures WHERE course_id = ? AND user_id = ?`, courseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete lectures: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM courses WHERE id = ? AND user_id = ?`, courseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit course delete: %w", err)
	}

	return nil
}

var _ models.CourseRepository = (*CourseRepository)(nil)
