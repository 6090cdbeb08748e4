package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lectern/internal/models"
	tu "github.com/desertthunder/lectern/internal/testing"
)

func sampleExport() *LectureExport {
	lecture := models.NewLecture(1, 1, "Graph Algorithms", 3)
	lecture.SetID(42)
	lecture.SetCreatedAt(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	transcript := models.NewTranscript(42, 1, models.KindTranscript, "today we cover BFS and DFS", 0)
	transcript.SetID(1)
	note := models.NewTranscript(42, 1, models.KindNote, "ask about weighted edges", 0)
	note.SetID(2)
	summary := models.NewTranscript(42, 1, models.KindSummary, "BFS explores level by level", 0)
	summary.SetID(3)

	return &LectureExport{
		Lecture:     lecture,
		Transcripts: []*models.Transcript{transcript, note, summary},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleExport())
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse exported CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	if records[0][1] != "Kind" {
		t.Errorf("expected Kind column, got %s", records[0][1])
	}
	if records[2][1] != "note" || records[2][2] != "ask about weighted edges" {
		t.Errorf("unexpected note row: %v", records[2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleExport())
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}
	md := string(data)

	if !strings.HasPrefix(md, "# Graph Algorithms\n") {
		t.Error("expected lecture title heading")
	}
	if !strings.Contains(md, "**Lecture**: 3") {
		t.Error("expected lecture number")
	}

	// summary section leads, then transcript, then notes
	sumIdx := strings.Index(md, "## Summary")
	trIdx := strings.Index(md, "## Transcript")
	noteIdx := strings.Index(md, "## Notes")
	if sumIdx == -1 || trIdx == -1 || noteIdx == -1 {
		t.Fatalf("expected all three sections, got:\n%s", md)
	}
	if !(sumIdx < trIdx && trIdx < noteIdx) {
		t.Error("expected summary before transcript before notes")
	}
}

func TestExportToMarkdownSkipsEmptySections(t *testing.T) {
	export := sampleExport()
	export.Transcripts = export.Transcripts[:1] // transcript only

	data, err := ExportToMarkdown(export)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	if strings.Contains(string(data), "## Notes") || strings.Contains(string(data), "## Summary") {
		t.Error("expected empty sections to be omitted")
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleExport())
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Lecture: Graph Algorithms") {
		t.Error("expected lecture title")
	}
	if !strings.Contains(text, "2. [note] ask about weighted edges") {
		t.Errorf("expected numbered kind-tagged entries, got:\n%s", text)
	}
}

func TestWriteLectureExport(t *testing.T) {
	t.Run("writes markdown by default", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteLectureExport(sampleExport(), dir, "")
		if err != nil {
			t.Fatalf("failed to write export: %v", err)
		}

		tu.AssertFileExists(t, path)
		if filepath.Base(path) != "lecture_42_graph_algorithms.md" {
			t.Errorf("unexpected filename: %s", filepath.Base(path))
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "# Graph Algorithms") {
			t.Error("expected markdown content")
		}
	})

	t.Run("writes csv when requested", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteLectureExport(sampleExport(), dir, "csv")
		if err != nil {
			t.Fatalf("failed to write export: %v", err)
		}
		if filepath.Ext(path) != ".csv" {
			t.Errorf("expected .csv extension, got %s", path)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		if _, err := WriteLectureExport(sampleExport(), t.TempDir(), "pdf"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("creates nested output directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports", "spring")

		if _, err := WriteLectureExport(sampleExport(), dir, "text"); err != nil {
			t.Fatalf("failed to write export: %v", err)
		}
		tu.AssertDirExists(t, dir)
	})
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Graph Algorithms", "graph_algorithms"},
		{"Intro to C++ (Part 2)", "intro_to_c_part_2"},
		{"   ", "untitled"},
		{"already_clean", "already_clean"},
	}

	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
