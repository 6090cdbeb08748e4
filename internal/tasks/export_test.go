package tasks

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/desertthunder/lectern/internal/models"
	tu "github.com/desertthunder/lectern/internal/testing"
)

func TestExportCourse(t *testing.T) {
	t.Run("exports every lecture", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "lecture one content")

		if _, err := f.store.Lectures().Create(f.courseID, f.userID, "Searching", 2); err != nil {
			t.Fatalf("failed to create lecture: %v", err)
		}

		dir := filepath.Join(t.TempDir(), "out")
		result, err := f.engine.ExportCourse(context.Background(), nil, f.courseID, f.userID, ExportOpts{
			Format:    "markdown",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("failed to export course: %v", err)
		}

		if result.TotalLectures != 2 {
			t.Errorf("expected 2 lectures, got %d", result.TotalLectures)
		}
		if result.SuccessCount != 2 || result.FailedCount != 0 {
			t.Errorf("expected 2 successes, got %d/%d", result.SuccessCount, result.FailedCount)
		}

		for _, r := range result.Results {
			if r.Err != nil {
				t.Errorf("unexpected failure for %s: %v", r.Lecture.Title(), r.Err)
				continue
			}
			tu.AssertFileExists(t, r.Path)
		}
	})

	t.Run("empty course exports nothing", func(t *testing.T) {
		f := setupEngine(t)

		emptyID, err := f.store.Courses().Create(f.userID, "Empty Course")
		if err != nil {
			t.Fatalf("failed to create course: %v", err)
		}

		result, err := f.engine.ExportCourse(context.Background(), nil, emptyID, f.userID, ExportOpts{
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("failed to export course: %v", err)
		}
		if result.TotalLectures != 0 || len(result.Results) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})

	t.Run("foreign course exports nothing", func(t *testing.T) {
		f := setupEngine(t)

		otherID, err := f.store.Users().Create("b@example.com", "b", "h")
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		result, err := f.engine.ExportCourse(context.Background(), nil, f.courseID, otherID, ExportOpts{
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("failed to export course: %v", err)
		}
		if result.TotalLectures != 0 {
			t.Errorf("expected no lectures for non-owner, got %d", result.TotalLectures)
		}
	})

	t.Run("bad format recorded as per-lecture failure", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "content")

		result, err := f.engine.ExportCourse(context.Background(), nil, f.courseID, f.userID, ExportOpts{
			Format:    "pdf",
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("expected run to survive bad format, got %v", err)
		}
		if result.FailedCount != 1 {
			t.Errorf("expected 1 failure, got %d", result.FailedCount)
		}
	})

	t.Run("emits export progress", func(t *testing.T) {
		f := setupEngine(t)
		f.addTranscript(t, models.KindTranscript, "content")

		progress := make(chan ProgressUpdate, 32)
		if _, err := f.engine.ExportCourse(context.Background(), progress, f.courseID, f.userID, ExportOpts{
			OutputDir: t.TempDir(),
		}); err != nil {
			t.Fatalf("failed to export course: %v", err)
		}
		close(progress)

		sawCollect, sawExport := false, false
		for update := range progress {
			switch update.Phase {
			case CollectLectures:
				sawCollect = true
			case ExportLectures:
				sawExport = true
			}
		}
		if !sawCollect || !sawExport {
			t.Error("expected collect and export phases in progress stream")
		}
	})
}
