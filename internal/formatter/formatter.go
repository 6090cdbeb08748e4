// package formatter provides functions to export lecture data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/desertthunder/lectern/internal/models"
)

// LectureExport bundles a lecture with its transcripts for export.
type LectureExport struct {
	Lecture     *models.Lecture
	Transcripts []*models.Transcript
}

// ExportToCSV converts a LectureExport to CSV format with columns: ID, Kind, Content, Timestamp, CreatedAt
func ExportToCSV(export *LectureExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Kind", "Content", "Timestamp", "CreatedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range export.Transcripts {
		record := []string{
			strconv.FormatInt(t.ID(), 10),
			string(t.Kind()),
			t.Content(),
			strconv.FormatInt(t.Timestamp(), 10),
			t.CreatedAt().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a LectureExport to Markdown format with a section per entry kind
func ExportToMarkdown(export *LectureExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Lecture.Title()))
	if export.Lecture.LectureNumber() > 0 {
		buf.WriteString(fmt.Sprintf("**Lecture**: %d\n", export.Lecture.LectureNumber()))
	}
	buf.WriteString(fmt.Sprintf("**Recorded**: %s\n", export.Lecture.CreatedAt().Format("2006-01-02")))
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n\n", len(export.Transcripts)))

	sections := []struct {
		kind  models.TranscriptKind
		title string
	}{
		{models.KindSummary, "Summary"},
		{models.KindTranscript, "Transcript"},
		{models.KindNote, "Notes"},
	}

	for _, section := range sections {
		var entries []*models.Transcript
		for _, t := range export.Transcripts {
			if t.Kind() == section.kind {
				entries = append(entries, t)
			}
		}
		if len(entries) == 0 {
			continue
		}

		buf.WriteString(fmt.Sprintf("## %s\n\n", section.title))
		for _, t := range entries {
			buf.WriteString(t.Content())
			buf.WriteString("\n\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a LectureExport to plain text format
func ExportToText(export *LectureExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Lecture: %s\n", export.Lecture.Title()))
	buf.WriteString(fmt.Sprintf("Entries: %d\n\n", len(export.Transcripts)))

	for i, t := range export.Transcripts {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, t.Kind(), t.Content()))
	}

	return buf.Bytes(), nil
}

// WriteLectureExport renders the lecture in the requested format and writes it
// under outputDir. The filename derives from the lecture id and title.
//
// Supported formats: "csv", "markdown" (default), "text".
func WriteLectureExport(export *LectureExport, outputDir, format string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(export)
		ext = "csv"
	case "text":
		data, err = ExportToText(export)
		ext = "txt"
	case "", "markdown":
		data, err = ExportToMarkdown(export)
		ext = "md"
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("lecture_%d_%s.%s", export.Lecture.ID(), slugify(export.Lecture.Title()), ext)
	path := filepath.Join(outputDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// slugify lowercases the title and squashes anything non-alphanumeric to
// single underscores so it is safe in a filename.
func slugify(title string) string {
	var out []rune
	lastUnderscore := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
			lastUnderscore = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			lastUnderscore = false
		default:
			if !lastUnderscore && len(out) > 0 {
				out = append(out, '_')
				lastUnderscore = true
			}
		}
	}
	if len(out) > 0 && out[len(out)-1] == '_' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "untitled"
	}
	return string(out)
}
