// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
)

// MockTranscriber is a test double for [services.Transcriber]
type MockTranscriber struct {
	Text string
	Err  error
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return m.Text, m.Err
}

// MockSummarizer is a test double for [services.Summarizer]
type MockSummarizer struct {
	Summary string
	Err     error

	// LastInput captures the text handed to the provider
	LastInput string
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	m.LastInput = text
	return m.Summary, m.Err
}

// MockTranslator is a test double for [services.Translator]
type MockTranslator struct {
	Translated string
	Err        error
	LastTarget string
}

func (m *MockTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	m.LastTarget = target
	return m.Translated, m.Err
}

// MockDevice is a test double for [recorder.CaptureDevice]
type MockDevice struct {
	Audio    []byte
	StartErr error
	StopErr  error
	Started  bool
	Stopped  bool
}

func (m *MockDevice) Start(ctx context.Context) error {
	m.Started = true
	return m.StartErr
}

func (m *MockDevice) Stop(ctx context.Context) ([]byte, error) {
	m.Stopped = true
	return m.Audio, m.StopErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
