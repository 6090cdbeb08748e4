// Package recorder coordinates audio capture and hand-off of transcription
// results.
//
// A [Coordinator] owns one [CaptureDevice] and walks a small state machine:
// idle, capturing, finalizing. Stopping a capture runs the audio through the
// transcriber and publishes a [Result] to the current subscriber. There is a
// single subscriber slot; a new Subscribe call replaces the previous listener,
// and a result arriving with nobody listening is dropped with a logged notice
// rather than blocking the pipeline.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lectern/internal/services"
	"github.com/desertthunder/lectern/internal/shared"
)

var (
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// State is the coordinator's position in the capture lifecycle.
type State int

const (
	StateIdle State = iota
	StateCapturing
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateCapturing:
		return "capturing"
	case StateFinalizing:
		return "finalizing"
	default:
		return "idle"
	}
}

// CaptureDevice abstracts an audio source. Start begins capture; Stop ends it
// and returns the captured audio bytes.
type CaptureDevice interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) ([]byte, error)
}

// FileDevice is a [CaptureDevice] that replays a pre-recorded audio file,
// which is how the CLI feeds audio captured outside the process.
type FileDevice struct {
	path string
}

// NewFileDevice creates a device that reads the audio file at path on Stop.
func NewFileDevice(path string) *FileDevice {
	return &FileDevice{path: path}
}

func (d *FileDevice) Start(ctx context.Context) error {
	if _, err := os.Stat(d.path); err != nil {
		return fmt.Errorf("audio file unavailable: %w", err)
	}
	return nil
}

func (d *FileDevice) Stop(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return data, nil
}

// Result is the outcome of one finished capture. Err carries transcription
// failures so subscribers see every capture end, successful or not.
type Result struct {
	CaptureID string
	Text      string
	Err       error
}

// Coordinator drives the capture lifecycle and delivers results.
type Coordinator struct {
	device      CaptureDevice
	transcriber services.Transcriber
	logger      *log.Logger

	mu        sync.Mutex
	state     State
	captureID string
	sub       chan Result
}

// NewCoordinator creates a Coordinator over the given device and transcriber.
func NewCoordinator(device CaptureDevice, transcriber services.Transcriber, logger *log.Logger) *Coordinator {
	return &Coordinator{device: device, transcriber: transcriber, logger: logger}
}

// State returns the coordinator's current lifecycle position.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe claims the single listener slot and returns the result channel.
// Any previous subscriber is replaced and its channel closed; the newest
// listener always wins the slot.
func (c *Coordinator) Subscribe() <-chan Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		close(c.sub)
	}

	c.sub = make(chan Result, 1)
	return c.sub
}

// Unsubscribe releases the listener slot. Results produced afterwards are
// dropped with a notice.
func (c *Coordinator) Unsubscribe() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		close(c.sub)
		c.sub = nil
	}
}

// Start begins a capture and returns its id. Only one capture may run at a
// time.
func (c *Coordinator) Start(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return "", ErrAlreadyRecording
	}
	c.state = StateCapturing
	c.captureID = shared.NewCaptureID()
	id := c.captureID
	c.mu.Unlock()

	if err := c.device.Start(ctx); err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.captureID = ""
		c.mu.Unlock()
		return "", fmt.Errorf("failed to start capture: %w", err)
	}

	c.logger.Info("capture started", "capture_id", id)
	return id, nil
}

// Stop ends the running capture, transcribes the audio, and publishes the
// outcome to the subscriber. The returned error covers lifecycle problems
// only; transcription failures travel inside the [Result].
func (c *Coordinator) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateCapturing {
		c.mu.Unlock()
		return ErrNotRecording
	}
	c.state = StateFinalizing
	id := c.captureID
	c.mu.Unlock()

	audio, err := c.device.Stop(ctx)

	result := Result{CaptureID: id}
	if err != nil {
		result.Err = fmt.Errorf("failed to stop capture: %w", err)
	} else {
		result.Text, result.Err = c.transcriber.Transcribe(ctx, audio)
	}

	c.publish(result)

	c.mu.Lock()
	c.state = StateIdle
	c.captureID = ""
	c.mu.Unlock()

	c.logger.Info("capture finished", "capture_id", id, "ok", result.Err == nil)
	return nil
}

// Toggle starts a capture when idle and stops the running one when capturing,
// matching a single record button. The returned id identifies the capture a
// toggle started; a toggle that stopped one returns an empty id. A capture
// mid-finalize cannot be toggled.
func (c *Coordinator) Toggle(ctx context.Context) (string, error) {
	switch c.State() {
	case StateIdle:
		return c.Start(ctx)
	case StateCapturing:
		return "", c.Stop(ctx)
	default:
		return "", ErrAlreadyRecording
	}
}

func (c *Coordinator) publish(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		c.logger.Warn("no subscriber, dropping capture result", "capture_id", result.CaptureID)
		return
	}

	select {
	case c.sub <- result:
	default:
		c.logger.Warn("subscriber not draining, dropping capture result", "capture_id", result.CaptureID)
	}
}
