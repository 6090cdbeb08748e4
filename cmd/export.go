package main

import (
	"context"

	"github.com/desertthunder/lectern/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes every lecture of a course to files in the chosen format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}
	if err := r.ensureEngine(cmd); err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
		RateLimit: r.config.Export.RateLimit,
	}
	if opts.Format == "" {
		opts.Format = r.config.Export.Format
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	result, err := r.engine.ExportCourse(ctx, progress, cmd.Int64("course"), user.ID(), opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if err := r.writePlainln("Exported %d/%d lectures to %s", result.SuccessCount, result.TotalLectures, result.OutputDirectory); err != nil {
		return err
	}
	for _, lr := range result.Results {
		if lr.Err != nil {
			if err := r.writePlainln("  failed: %s: %v", lr.Lecture.Title(), lr.Err); err != nil {
				return err
			}
		}
	}
	return nil
}
