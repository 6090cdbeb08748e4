package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lectern/internal/shared"
)

// TranscriptKind classifies a transcript row: a plain speech transcript, a
// user-written note, or an AI-generated summary.
type TranscriptKind string

const (
	KindTranscript TranscriptKind = "transcript"
	KindNote       TranscriptKind = "note"
	KindSummary    TranscriptKind = "summary"
)

// Legacy in-band markers. Earlier schema revisions had no kind column and
// tagged the semantic subtype with a bracketed prefix on the content string.
const (
	legacyNotePrefix    = "[Note] "
	legacySummaryPrefix = "[Summary] "
)

// ParseKind maps a stored or user-supplied kind string to a TranscriptKind.
// The empty string reads as a plain transcript for legacy rows.
func ParseKind(s string) (TranscriptKind, error) {
	switch TranscriptKind(s) {
	case KindTranscript, KindNote, KindSummary:
		return TranscriptKind(s), nil
	case "":
		return KindTranscript, nil
	}
	return "", fmt.Errorf("%w: unknown transcript kind %q", shared.ErrInvalidFlag, s)
}

// NormalizeKind migrates legacy content into the explicit kind field at load
// time: rows stored before the kind column existed carry their subtype as a
// content prefix, which is mapped to the kind and stripped. Unmarked content
// reads as a plain transcript.
func NormalizeKind(kind, content string) (TranscriptKind, string) {
	parsed, err := ParseKind(kind)
	if err != nil {
		parsed = KindTranscript
	}

	if parsed != KindTranscript {
		return parsed, content
	}

	switch {
	case strings.HasPrefix(content, legacyNotePrefix):
		return KindNote, strings.TrimPrefix(content, legacyNotePrefix)
	case strings.HasPrefix(content, legacySummaryPrefix):
		return KindSummary, strings.TrimPrefix(content, legacySummaryPrefix)
	}

	return parsed, content
}

// Transcript is a text record attached to a lecture. The timestamp field is a
// caller-supplied ordering hint retained for compatibility; the canonical
// ordering key is the creation time.
type Transcript struct {
	id        int64
	lectureID int64
	userID    int64
	kind      TranscriptKind
	content   string
	timestamp int64
	createdAt time.Time
	updatedAt *time.Time
}

// NewTranscript creates a Transcript pending persistence.
func NewTranscript(lectureID, userID int64, kind TranscriptKind, content string, timestamp int64) *Transcript {
	if kind == "" {
		kind = KindTranscript
	}
	return &Transcript{
		lectureID: lectureID,
		userID:    userID,
		kind:      kind,
		content:   content,
		timestamp: timestamp,
		createdAt: time.Now(),
	}
}

func (t *Transcript) ID() int64            { return t.id }
func (t *Transcript) LectureID() int64     { return t.lectureID }
func (t *Transcript) UserID() int64        { return t.userID }
func (t *Transcript) Kind() TranscriptKind { return t.kind }
func (t *Transcript) Content() string      { return t.content }
func (t *Transcript) Timestamp() int64     { return t.timestamp }
func (t *Transcript) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the content was last edited, nil if never.
func (t *Transcript) UpdatedAt() *time.Time { return t.updatedAt }

func (t *Transcript) SetID(id int64)            { t.id = id }
func (t *Transcript) SetContent(c string)       { t.content = c }
func (t *Transcript) SetCreatedAt(ts time.Time) { t.createdAt = ts }
func (t *Transcript) SetUpdatedAt(ts *time.Time) {
	t.updatedAt = ts
}

// Validate checks the transcript's data before persistence.
func (t *Transcript) Validate() error {
	if t.lectureID == 0 {
		return fmt.Errorf("%w: lecture id", shared.ErrMissingField)
	}
	if t.userID == 0 {
		return fmt.Errorf("%w: user id", shared.ErrMissingField)
	}
	if t.content == "" {
		return fmt.Errorf("%w: content", shared.ErrMissingField)
	}
	if _, err := ParseKind(string(t.kind)); err != nil {
		return err
	}
	return nil
}
