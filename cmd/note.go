package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// NoteAdd appends a note or transcript entry to a lecture. Summaries are
// produced by the summarize command, not added by hand.
func (r *Runner) NoteAdd(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	content := cmd.StringArg("content")
	if content == "" {
		return fmt.Errorf("%w: content", shared.ErrMissingField)
	}

	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	if kind == models.KindSummary {
		return fmt.Errorf("%w: summaries are generated with 'lectern summarize'", shared.ErrInvalidFlag)
	}

	id, err := r.store.Transcripts().Create(cmd.Int64("lecture"), user.ID(), kind, content, 0)
	if err != nil {
		return err
	}

	return r.writePlainln("Added %s %d", kind, id)
}

// NoteList prints a lecture's entries in creation order.
func (r *Runner) NoteList(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	transcripts, err := r.store.Transcripts().ListByLecture(cmd.Int64("lecture"), user.ID())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]transcriptView, 0, len(transcripts))
		for _, t := range transcripts {
			views = append(views, newTranscriptView(t))
		}
		return r.writeJSON(views, true)
	}

	if len(transcripts) == 0 {
		return r.writePlainln("No entries yet")
	}

	for _, t := range transcripts {
		// Truncate on runes so a multi-byte character is never split.
		content := t.Content()
		if runes := []rune(content); len(runes) > 72 {
			content = string(runes[:69]) + "..."
		}
		if err := r.writePlainln("%d\t[%s]\t%s", t.ID(), t.Kind(), content); err != nil {
			return err
		}
	}
	return nil
}

// NoteShow prints one entry in full.
func (r *Runner) NoteShow(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	t, err := r.store.Transcripts().Get(cmd.Int64("id"), user.ID())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(newTranscriptView(t), true)
	}

	if err := r.writePlainln("[%s] entry %d, created %s", t.Kind(), t.ID(), t.CreatedAt().Format("2006-01-02 15:04")); err != nil {
		return err
	}
	return r.writePlainln("%s", t.Content())
}

// NoteEdit replaces an entry's content in place.
func (r *Runner) NoteEdit(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	content := cmd.StringArg("content")
	if content == "" {
		return fmt.Errorf("%w: content", shared.ErrMissingField)
	}

	t, err := r.store.Transcripts().Update(cmd.Int64("id"), user.ID(), content)
	if err != nil {
		return err
	}

	return r.writePlainln("Updated %s %d", t.Kind(), t.ID())
}

// NoteDelete removes one entry.
func (r *Runner) NoteDelete(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := r.store.Transcripts().Delete(id, user.ID()); err != nil {
		return err
	}

	return r.writePlainln("Deleted entry %d", id)
}
