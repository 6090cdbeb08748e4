// package tasks implements the lecture note operations.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/services"
	"github.com/desertthunder/lectern/internal/shared"
)

// SummarizeResult contains the outcome of a lecture summarization.
type SummarizeResult struct {
	Summary *models.Transcript // The stored summary row
	Updated bool               // True when an existing summary was replaced
	Entries int                // Number of transcript entries condensed
}

// TranslateResult contains a translated transcript. Translations are
// ephemeral: nothing is written back to storage.
type TranslateResult struct {
	Transcript *models.Transcript // The source transcript
	Target     string             // Target language code
	Translated string             // Translated content
}

// NoteEngine defines the lecture note operations.
type NoteEngine interface {
	// Summarize condenses a lecture's transcripts into one summary row.
	// A lecture keeps at most one summary: an existing one is updated in
	// place rather than duplicated.
	Summarize(ctx context.Context, progress chan<- ProgressUpdate, lectureID, userID int64) (*SummarizeResult, error)

	// Translate renders one transcript into the target language without
	// persisting the result.
	Translate(ctx context.Context, progress chan<- ProgressUpdate, transcriptID, userID int64, target string) (*TranslateResult, error)

	// ExportCourse writes every lecture of a course to files.
	ExportCourse(ctx context.Context, progress chan<- ProgressUpdate, courseID, userID int64, opts ExportOpts) (*CourseExportResult, error)
}

// LectureEngine implements [NoteEngine] over a storage backend and the AI
// providers.
type LectureEngine struct {
	store      models.Store
	summarizer services.Summarizer
	translator services.Translator
}

// NewLectureEngine creates a LectureEngine with the provided dependencies.
// Providers may be nil; the operations that need them fail with
// [shared.ErrServiceUnavailable].
func NewLectureEngine(store models.Store, summarizer services.Summarizer, translator services.Translator) *LectureEngine {
	return &LectureEngine{
		store:      store,
		summarizer: summarizer,
		translator: translator,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LectureEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Summarize condenses the lecture's transcripts and notes into one summary.
// Existing summaries are excluded from the input and replaced by the output.
func (e *LectureEngine) Summarize(ctx context.Context, progress chan<- ProgressUpdate, lectureID, userID int64) (*SummarizeResult, error) {
	if e.summarizer == nil {
		return nil, fmt.Errorf("%w: summary provider not configured", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, collectTranscriptsUpdate(lectureID))

	transcripts, err := e.store.Transcripts().ListByLecture(lectureID, userID)
	if err != nil {
		return nil, err
	}

	var parts []string
	for _, t := range transcripts {
		if t.Kind() == models.KindSummary {
			continue
		}
		parts = append(parts, t.Content())
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: lecture %d has no transcripts to summarize", shared.ErrNotFound, lectureID)
	}

	e.sendProgress(progress, generateSummaryUpdate(len(parts)))

	text, err := e.summarizer.Summarize(ctx, strings.Join(parts, "\n\n"))
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	result := &SummarizeResult{Entries: len(parts)}

	existing, err := e.store.Transcripts().FindSummary(lectureID, userID)
	switch {
	case err == nil:
		e.sendProgress(progress, saveSummaryUpdate(true))

		updated, err := e.store.Transcripts().Update(existing.ID(), userID, text)
		if err != nil {
			return nil, fmt.Errorf("failed to update summary: %w", err)
		}
		result.Summary = updated
		result.Updated = true

	case errors.Is(err, shared.ErrNotFound):
		e.sendProgress(progress, saveSummaryUpdate(false))

		id, err := e.store.Transcripts().Create(lectureID, userID, models.KindSummary, text, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to save summary: %w", err)
		}
		summary, err := e.store.Transcripts().Get(id, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load saved summary: %w", err)
		}
		result.Summary = summary

	default:
		return nil, err
	}

	return result, nil
}

// Translate renders the transcript into the target language. The translation
// is returned to the caller only; storage keeps the original.
func (e *LectureEngine) Translate(ctx context.Context, progress chan<- ProgressUpdate, transcriptID, userID int64, target string) (*TranslateResult, error) {
	if e.translator == nil {
		return nil, fmt.Errorf("%w: translation provider not configured", shared.ErrServiceUnavailable)
	}
	if target == "" {
		return nil, fmt.Errorf("%w: target language", shared.ErrMissingField)
	}

	e.sendProgress(progress, loadTranscriptUpdate(transcriptID))

	transcript, err := e.store.Transcripts().Get(transcriptID, userID)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, translateTextUpdate(target))

	translated, err := e.translator.Translate(ctx, transcript.Content(), target)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	return &TranslateResult{
		Transcript: transcript,
		Target:     target,
		Translated: translated,
	}, nil
}

var _ NoteEngine = (*LectureEngine)(nil)
