package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/recorder"
	"github.com/desertthunder/lectern/internal/services"
	"github.com/desertthunder/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// Record runs one capture over an audio file and stores the transcription as
// a transcript entry on the lecture.
func (r *Runner) Record(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	transcriber, err := services.NewSpeechService(r.config.Providers.Speech)
	if err != nil {
		return fmt.Errorf("%w: speech provider not configured", shared.ErrServiceUnavailable)
	}

	device := recorder.NewFileDevice(cmd.String("file"))
	coordinator := recorder.NewCoordinator(device, transcriber, r.logger)

	results := coordinator.Subscribe()
	defer coordinator.Unsubscribe()

	captureID, err := coordinator.Start(ctx)
	if err != nil {
		return err
	}
	r.logger.Debug("capture started", "capture_id", captureID)

	if err := coordinator.Stop(ctx); err != nil {
		return err
	}

	result := <-results
	if result.Err != nil {
		return fmt.Errorf("transcription failed: %w", result.Err)
	}

	id, err := r.store.Transcripts().Create(cmd.Int64("lecture"), user.ID(), models.KindTranscript, result.Text, 0)
	if err != nil {
		return err
	}

	return r.writePlainln("Saved transcript %d (capture %s)", id, result.CaptureID)
}
