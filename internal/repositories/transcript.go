package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

// TranscriptRepository implements [models.TranscriptRepository] for transcript persistence.
//
// Rows written before the kind column existed carry their subtype as a content
// prefix; every read path routes through [models.NormalizeKind] so callers only
// ever see the explicit kind.
type TranscriptRepository struct {
	db *sql.DB
}

// NewTranscriptRepository creates a new [TranscriptRepository] with the given database connection
func NewTranscriptRepository(db *sql.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Create inserts a new transcript under the lecture and returns its generated id
func (r *TranscriptRepository) Create(lectureID, userID int64, kind models.TranscriptKind, content string, timestamp int64) (int64, error) {
	transcript := models.NewTranscript(lectureID, userID, kind, content, timestamp)
	if err := transcript.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO transcripts (lecture_id, user_id, kind, content, timestamp, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, lectureID, userID, string(transcript.Kind()), content, timestamp, transcript.CreatedAt())
	if err != nil {
		return 0, fmt.Errorf("failed to insert transcript: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// Get retrieves the transcript with the given (id, userID) pair
func (r *TranscriptRepository) Get(id, userID int64) (*models.Transcript, error) {
	query := `
		SELECT id, lecture_id, user_id, kind, content, timestamp, created_at, updated_at
		FROM transcripts
		WHERE id = ? AND user_id = ?
	`

	transcript, err := r.scanRow(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transcript %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}

	return transcript, nil
}

// ListByLecture retrieves the lecture's transcripts in creation order, oldest first
func (r *TranscriptRepository) ListByLecture(lectureID, userID int64) ([]*models.Transcript, error) {
	query := `
		SELECT id, lecture_id, user_id, kind, content, timestamp, created_at, updated_at
		FROM transcripts
		WHERE lecture_id = ? AND user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, lectureID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []*models.Transcript
	for rows.Next() {
		transcript, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		transcripts = append(transcripts, transcript)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return transcripts, nil
}

// Update replaces the transcript's content and stamps updated_at. The
// normalized kind from the read is written back alongside the content: a
// legacy row's subtype lives in its content prefix, and rewriting the content
// without persisting the kind would strip it.
func (r *TranscriptRepository) Update(id, userID int64, content string) (*models.Transcript, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content", shared.ErrMissingField)
	}

	existing, err := r.Get(id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	query := `
		UPDATE transcripts
		SET kind = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	if _, err := r.db.Exec(query, string(existing.Kind()), content, now, id, userID); err != nil {
		return nil, fmt.Errorf("failed to update transcript: %w", err)
	}

	return r.Get(id, userID)
}

// Delete removes the transcript with the given (id, userID) pair. A missing or
// foreign id deletes nothing and returns nil.
func (r *TranscriptRepository) Delete(id, userID int64) error {
	_, err := r.db.Exec(`DELETE FROM transcripts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}

	return nil
}

// FindSummary retrieves the lecture's summary transcript. Legacy summaries are
// matched on their content prefix since their kind column still reads 'transcript'.
func (r *TranscriptRepository) FindSummary(lectureID, userID int64) (*models.Transcript, error) {
	query := `
		SELECT id, lecture_id, user_id, kind, content, timestamp, created_at, updated_at
		FROM transcripts
		WHERE lecture_id = ? AND user_id = ? AND (kind = 'summary' OR content LIKE '[Summary] %')
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	transcript, err := r.scanRow(r.db.QueryRow(query, lectureID, userID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: summary for lecture %d", shared.ErrNotFound, lectureID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}

	return transcript, nil
}

// scanner is the shared surface of sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *TranscriptRepository) scanRow(row scanner) (*models.Transcript, error) {
	var (
		id        int64
		lectureID int64
		userID    int64
		kind      string
		content   string
		timestamp int64
		createdAt time.Time
		updatedAt sql.NullTime
	)

	err := row.Scan(&id, &lectureID, &userID, &kind, &content, &timestamp, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	normalizedKind, normalizedContent := models.NormalizeKind(kind, content)

	transcript := models.NewTranscript(lectureID, userID, normalizedKind, normalizedContent, timestamp)
	transcript.SetID(id)
	transcript.SetCreatedAt(createdAt)
	if updatedAt.Valid {
		transcript.SetUpdatedAt(&updatedAt.Time)
	}

	return transcript, nil
}

var _ models.TranscriptRepository = (*TranscriptRepository)(nil)
