package tasks

import (
	"fmt"

	"github.com/desertthunder/lectern/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CollectTranscripts Phase = iota
	GenerateSummary
	SaveSummary
	LoadTranscript
	TranslateText
	CollectLectures
	ExportLectures
)

func (p Phase) String() string {
	switch p {
	case CollectTranscripts:
		return "collect_transcripts"
	case GenerateSummary:
		return "generate_summary"
	case SaveSummary:
		return "save_summary"
	case LoadTranscript:
		return "load_transcript"
	case TranslateText:
		return "translate_text"
	case CollectLectures:
		return "collect_lectures"
	case ExportLectures:
		return "export_lectures"
	default:
		return ""
	}
}

func collectTranscriptsUpdate(lectureID int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectTranscripts,
		Step:    1,
		Total:   3,
		Message: fmt.Sprintf("Collecting transcripts for lecture %d...", lectureID),
	}
}

func generateSummaryUpdate(entries int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateSummary,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("Summarizing %d entries...", entries),
	}
}

func saveSummaryUpdate(updated bool) ProgressUpdate {
	message := "Saving new summary..."
	if updated {
		message = "Updating existing summary..."
	}
	return ProgressUpdate{
		Phase:   SaveSummary,
		Step:    3,
		Total:   3,
		Message: message,
	}
}

func loadTranscriptUpdate(transcriptID int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadTranscript,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Loading transcript %d...", transcriptID),
	}
}

func translateTextUpdate(target string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TranslateText,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Translating to %s...", target),
	}
}

func collectLecturesUpdate(courseID int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectLectures,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Collecting lectures for course %d...", courseID),
	}
}

func exportLectureUpdate(step, total int, lecture *models.Lecture) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLectures,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, lecture.Title()),
	}
}

func exportDoneUpdate(step, total int, lecture *models.Lecture, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLectures,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, lecture.Title()),
		Data:    path,
	}
}

func exportFailedUpdate(step, total int, lecture *models.Lecture, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLectures,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, lecture.Title(), err),
	}
}
