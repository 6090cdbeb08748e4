package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/lectern/internal/kvstore"
	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
	tu "github.com/desertthunder/lectern/internal/testing"
)

type fixture struct {
	store      models.Store
	userID     int64
	courseID   int64
	lectureID  int64
	summarizer *tu.MockSummarizer
	translator *tu.MockTranslator
	engine     *LectureEngine
}

func setupEngine(t *testing.T) *fixture {
	t.Helper()

	store, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	userID, err := store.Users().Create("a@example.com", "a", "h")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	courseID, err := store.Courses().Create(userID, "Algorithms")
	if err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	lectureID, err := store.Lectures().Create(courseID, userID, "Sorting", 1)
	if err != nil {
		t.Fatalf("failed to create lecture: %v", err)
	}

	summarizer := &tu.MockSummarizer{Summary: "the short version"}
	translator := &tu.MockTranslator{Translated: "la versión corta"}

	return &fixture{
		store:      store,
		userID:     userID,
		courseID:   courseID,
		lectureID:  lectureID,
		summarizer: summarizer,
		translator: translator,
		engine:     NewLectureEngine(store, summarizer, translator),
	}
}

func (f *fixture) addTranscript(t *testing.T, kind models.TranscriptKind, content string) int64 {
	t.Helper()
	id, err := f.store.Transcripts().Create(f.lectureID, f.userID, kind, content, 0)
	if err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}
	return id
}

func TestSummarize(t *testing.T) {
	t.Run("creates a summary from transcripts and notes", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "first part")
		f.addTranscript(t, models.KindNote, "a note")

		result, err := f.engine.Summarize(context.Background(), nil, f.lectureID, f.userID)
		if err != nil {
			t.Fatalf("failed to summarize: %v", err)
		}

		if result.Updated {
			t.Error("expected a fresh summary, not an update")
		}
		if result.Entries != 2 {
			t.Errorf("expected 2 entries condensed, got %d", result.Entries)
		}
		if result.Summary.Kind() != models.KindSummary {
			t.Errorf("expected summary kind, got %s", result.Summary.Kind())
		}
		if result.Summary.Content() != "the short version" {
			t.Errorf("expected provider output stored, got %q", result.Summary.Content())
		}

		if !strings.Contains(f.summarizer.LastInput, "first part") || !strings.Contains(f.summarizer.LastInput, "a note") {
			t.Errorf("expected both entries in provider input, got %q", f.summarizer.LastInput)
		}
	})

	t.Run("updates the existing summary in place", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "content")

		first, err := f.engine.Summarize(context.Background(), nil, f.lectureID, f.userID)
		if err != nil {
			t.Fatalf("failed to summarize: %v", err)
		}

		f.summarizer.Summary = "a better summary"
		second, err := f.engine.Summarize(context.Background(), nil, f.lectureID, f.userID)
		if err != nil {
			t.Fatalf("failed to re-summarize: %v", err)
		}

		if !second.Updated {
			t.Error("expected second run to update")
		}
		if second.Summary.ID() != first.Summary.ID() {
			t.Error("expected the same summary row to be reused")
		}

		list, err := f.store.Transcripts().ListByLecture(f.lectureID, f.userID)
		if err != nil {
			t.Fatalf("failed to list transcripts: %v", err)
		}
		summaries := 0
		for _, tr := range list {
			if tr.Kind() == models.KindSummary {
				summaries++
			}
		}
		if summaries != 1 {
			t.Errorf("expected exactly one summary row, got %d", summaries)
		}
	})

	t.Run("old summary excluded from provider input", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "content")
		f.addTranscript(t, models.KindSummary, "stale summary")

		if _, err := f.engine.Summarize(context.Background(), nil, f.lectureID, f.userID); err != nil {
			t.Fatalf("failed to summarize: %v", err)
		}

		if strings.Contains(f.summarizer.LastInput, "stale summary") {
			t.Error("expected existing summary to be excluded from input")
		}
	})

	t.Run("empty lecture rejected", func(t *testing.T) {
		f := setupEngine(t)

		if _, err := f.engine.Summarize(context.Background(), nil, f.lectureID, f.userID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("provider failure surfaces", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "content")
		f.summarizer.Err = shared.ErrServiceUnavailable

		if _, err := f.engine.Summarize(context.Background(), nil, f.lectureID, f.userID); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected service unavailable error, got %v", err)
		}
	})

	t.Run("missing provider rejected", func(t *testing.T) {
		f := setupEngine(t)
		engine := NewLectureEngine(f.store, nil, nil)

		if _, err := engine.Summarize(context.Background(), nil, f.lectureID, f.userID); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected service unavailable error, got %v", err)
		}
	})

	t.Run("emits progress updates", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "content")

		progress := make(chan ProgressUpdate, 16)
		if _, err := f.engine.Summarize(context.Background(), progress, f.lectureID, f.userID); err != nil {
			t.Fatalf("failed to summarize: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) != 3 {
			t.Fatalf("expected 3 progress updates, got %d", len(phases))
		}
		if phases[0] != CollectTranscripts || phases[1] != GenerateSummary || phases[2] != SaveSummary {
			t.Errorf("unexpected phase order: %v", phases)
		}
	})
}

func TestTranslate(t *testing.T) {
	t.Run("returns translation without persisting", func(t *testing.T) {
		f := setupEngine(t)
		id := f.addTranscript(t, models.KindTranscript, "the short version")

		result, err := f.engine.Translate(context.Background(), nil, id, f.userID, "es")
		if err != nil {
			t.Fatalf("failed to translate: %v", err)
		}

		if result.Translated != "la versión corta" {
			t.Errorf("expected translated text, got %q", result.Translated)
		}
		if f.translator.LastTarget != "es" {
			t.Errorf("expected target passed to provider, got %s", f.translator.LastTarget)
		}

		stored, err := f.store.Transcripts().Get(id, f.userID)
		if err != nil {
			t.Fatalf("failed to reload transcript: %v", err)
		}
		if stored.Content() != "the short version" {
			t.Error("expected stored content unchanged")
		}
	})

	t.Run("unknown transcript rejected", func(t *testing.T) {
		f := setupEngine(t)

		if _, err := f.engine.Translate(context.Background(), nil, 999, f.userID, "es"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("missing target rejected", func(t *testing.T) {
		f := setupEngine(t)
		id := f.addTranscript(t, models.KindTranscript, "text")

		if _, err := f.engine.Translate(context.Background(), nil, id, f.userID, ""); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected missing field error, got %v", err)
		}
	})
}
