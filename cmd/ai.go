package main

import (
	"context"

	"github.com/desertthunder/lectern/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Summarize condenses a lecture's entries into its single summary row.
func (r *Runner) Summarize(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureEngine(cmd); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	result, err := r.engine.Summarize(ctx, progress, cmd.Int64("lecture"), user.ID())
	close(progress)
	<-done
	if err != nil {
		return err
	}

	verb := "Created"
	if result.Updated {
		verb = "Updated"
	}
	if err := r.writePlainln("%s summary %d from %d entries", verb, result.Summary.ID(), result.Entries); err != nil {
		return err
	}
	return r.writePlainln("%s", result.Summary.Content())
}

// Translate renders one entry in the target language without changing the
// stored original.
func (r *Runner) Translate(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureEngine(cmd); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	result, err := r.engine.Translate(ctx, progress, cmd.Int64("id"), user.ID(), cmd.String("to"))
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if err := r.writePlainln("[%s] entry %d:", result.Target, result.Transcript.ID()); err != nil {
		return err
	}
	return r.writePlainln("%s", result.Translated)
}
