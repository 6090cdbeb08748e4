// package services defines provider interfaces for speech, summary, and translation APIs
package services

import (
	"context"
)

// Transcriber converts captured audio into text.
type Transcriber interface {
	// Transcribe sends the audio to the provider and returns the recognized
	// text. Returns shared.ErrNoTranscription when the provider recognizes
	// nothing, and an error wrapping shared.ErrServiceUnavailable on
	// non-success responses.
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Summarizer condenses lecture text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator renders text into a target language.
type Translator interface {
	// Translate returns the text in the target language. The target is an
	// ISO 639-1 code such as "es" or "fr".
	Translate(ctx context.Context, text, target string) (string, error)
}
