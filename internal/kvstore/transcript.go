package kvstore

import (
	"fmt"
	"sort"
	"time"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

// TranscriptRepository implements [models.TranscriptRepository] over the
// transcripts collection. Legacy records carry no kind field; the conversion
// in [transcriptRecord.toModel] migrates them on the way out.
type TranscriptRepository struct {
	s *Store
}

// Create appends a new transcript record and returns its assigned id
func (r *TranscriptRepository) Create(lectureID, userID int64, kind models.TranscriptKind, content string, timestamp int64) (int64, error) {
	transcript := models.NewTranscript(lectureID, userID, kind, content, timestamp)
	if err := transcript.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return 0, err
	}

	record := transcriptRecord{
		ID:        nextID(records),
		LectureID: lectureID,
		UserID:    userID,
		Kind:      string(transcript.Kind()),
		Content:   content,
		Timestamp: timestamp,
		CreatedAt: transcript.CreatedAt(),
	}

	if err := writeCollection(r.s, transcriptsFile, append(records, record)); err != nil {
		return 0, err
	}

	return record.ID, nil
}

// Get retrieves the transcript with the given (id, userID) pair
func (r *TranscriptRepository) Get(id, userID int64) (*models.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			return rec.toModel(), nil
		}
	}

	return nil, fmt.Errorf("%w: transcript %d", shared.ErrNotFound, id)
}

// ListByLecture retrieves the lecture's transcripts in creation order, oldest first
func (r *TranscriptRepository) ListByLecture(lectureID, userID int64) ([]*models.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return nil, err
	}

	var transcripts []*models.Transcript
	for _, rec := range records {
		if rec.LectureID == lectureID && rec.UserID == userID {
			transcripts = append(transcripts, rec.toModel())
		}
	}

	sort.Slice(transcripts, func(i, j int) bool {
		if transcripts[i].CreatedAt().Equal(transcripts[j].CreatedAt()) {
			return transcripts[i].ID() < transcripts[j].ID()
		}
		return transcripts[i].CreatedAt().Before(transcripts[j].CreatedAt())
	})

	return transcripts, nil
}

// Update replaces the transcript's content and stamps updated_at. The record's
// kind is normalized and persisted in the same write: a legacy record's
// subtype lives in its content prefix, and rewriting the content without
// recording the kind would strip it.
func (r *TranscriptRepository) Update(id, userID int64, content string) (*models.Transcript, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content", shared.ErrMissingField)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			now := time.Now()
			kind, _ := models.NormalizeKind(rec.Kind, rec.Content)
			records[i].Kind = string(kind)
			records[i].Content = content
			records[i].UpdatedAt = &now
			if err := writeCollection(r.s, transcriptsFile, records); err != nil {
				return nil, err
			}
			return records[i].toModel(), nil
		}
	}

	return nil, fmt.Errorf("%w: transcript %d", shared.ErrNotFound, id)
}

// Delete removes the transcript with the given (id, userID) pair. A missing or
// foreign id removes nothing and returns nil.
func (r *TranscriptRepository) Delete(id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[transcriptRecord](r.s, transcriptsFile)
	if err != nil {
		return err
	}

	var kept []transcriptRecord
	removed := false
	for _, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}

	if !removed {
		return nil
	}

	return writeCollection(r.s, transcriptsFile, kept)
}

// FindSummary retrieves the lecture's summary transcript, matching legacy
// prefixed records the same way the relational backend does.
func (r *TranscriptRepository) FindSummary(lectureID, userID int64) (*models.Transcript, error) {
	transcripts, err := r.ListByLecture(lectureID, userID)
	if err != nil {
		return nil, err
	}

	for _, t := range transcripts {
		if t.Kind() == models.KindSummary {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: summary for lecture %d", shared.ErrNotFound, lectureID)
}

var _ models.TranscriptRepository = (*TranscriptRepository)(nil)
