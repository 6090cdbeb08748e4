// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing lecture notes:
//  1. [CourseListView] : Browse the logged-in user's courses
//  2. [LectureListView] : Browse lectures within a course
//  3. [TranscriptListView] : Browse transcripts, notes, and summaries of a lecture
//  4. [DetailView] : Read a single entry in full
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All storage reads run as commands so the event loop never blocks on the backend.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
