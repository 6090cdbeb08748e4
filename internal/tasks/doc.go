// Package tasks implements the long-running note operations: summarizing a
// lecture, translating a transcript, and exporting a whole course to files.
//
// The core abstraction is [NoteEngine], implemented by [LectureEngine], which
// orchestrates the storage layer and the AI providers. Operations emit
// progress updates via channels for non-blocking status reporting to the CLI
// and TUI layers; a slow or absent listener never stalls the work.
package tasks
