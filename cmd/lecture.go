package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// LectureCreate creates a lecture within one of the user's courses.
func (r *Runner) LectureCreate(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	id, err := r.store.Lectures().Create(cmd.Int64("course"), user.ID(), cmd.String("title"), cmd.Int("number"))
	if err != nil {
		return err
	}

	return r.writePlainln("Created lecture %q (id %d)", cmd.String("title"), id)
}

// LectureList lists the lectures of a course, newest first.
func (r *Runner) LectureList(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	lectures, err := r.store.Lectures().ListByCourse(cmd.Int64("course"), user.ID())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]lectureView, 0, len(lectures))
		for _, l := range lectures {
			views = append(views, newLectureView(l))
		}
		return r.writeJSON(views, true)
	}

	if len(lectures) == 0 {
		return r.writePlainln("No lectures yet")
	}

	for _, l := range lectures {
		if err := r.writePlainln("%d\t%s\t%s", l.ID(), l.Title(), l.CreatedAt().Format("2006-01-02")); err != nil {
			return err
		}
	}
	return nil
}

// LectureDelete removes a lecture and its transcripts.
func (r *Runner) LectureDelete(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := r.store.Lectures().Delete(id, user.ID()); err != nil {
		return err
	}

	return r.writePlainln("Deleted lecture %d", id)
}
