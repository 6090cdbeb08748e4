package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/lectern/internal/models"
)

// LectureRepository implements [models.LectureRepository] for lecture persistence.
type LectureRepository struct {
	db *sql.DB
}

// NewLectureRepository creates a new [LectureRepository] with the given database connection
func NewLectureRepository(db *sql.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// Create inserts a new lecture under the course and returns its generated id
func (r *LectureRepository) Create(courseID, userID int64, title string, lectureNumber int) (int64, error) {
	lecture := models.NewLecture(courseID, userID, title, lectureNumber)
	if err := lecture.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO lectures (course_id, user_id, title, lecture_number, created_at) VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, courseID, userID, title, lectureNumber, lecture.CreatedAt())
	if err != nil {
		return 0, fmt.Errorf("failed to insert lecture: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// ListByCourse retrieves the course's lectures, newest first
func (r *LectureRepository) ListByCourse(courseID, userID int64) ([]*models.Lecture, error) {
	query := `
		SELECT id, course_id, user_id, title, lecture_number, created_at
		FROM lectures
		WHERE course_id = ? AND user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lectures: %w", err)
	}
	defer rows.Close()

	var lectures []*models.Lecture
	for rows.Next() {
		var (
			id            int64
			course        int64
			owner         int64
			title         string
			lectureNumber int
			createdAt     time.Time
		)

		if err := rows.Scan(&id, &course, &owner, &title, &lectureNumber, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan lecture: %w", err)
		}

		lecture := models.NewLecture(course, owner, title, lectureNumber)
		lecture.SetID(id)
		lecture.SetCreatedAt(createdAt)
		lectures = append(lectures, lecture)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lectures, nil
}

// Delete removes the lecture and its transcripts, children first. A missing or
// foreign lecture id deletes nothing and returns nil.
func (r *LectureRepository) Delete(lectureID, userID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM transcripts WHERE lecture_id = ? AND user_id = ?`, lectureID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transcripts: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM lectures WHERE id = ? AND user_id = ?`, lectureID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete lecture: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lecture delete: %w", err)
	}

	return nil
}

var _ models.LectureRepository = (*LectureRepository)(nil)
