package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// CourseCreate creates a course owned by the logged-in user.
func (r *Runner) CourseCreate(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingField)
	}

	id, err := r.store.Courses().Create(user.ID(), name)
	if err != nil {
		return err
	}

	return r.writePlainln("Created course %q (id %d)", name, id)
}

// CourseList lists the logged-in user's courses.
func (r *Runner) CourseList(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	var sort models.CourseSort
	switch cmd.String("sort") {
	case "", "date":
		sort = models.SortByDate
	case "name":
		sort = models.SortByName
	default:
		return fmt.Errorf("%w: sort must be date or name", shared.ErrInvalidFlag)
	}

	courses, err := r.store.Courses().ListByUser(user.ID(), sort)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]courseView, 0, len(courses))
		for _, c := range courses {
			views = append(views, newCourseView(c))
		}
		return r.writeJSON(views, true)
	}

	if len(courses) == 0 {
		return r.writePlainln("No courses yet")
	}

	for _, c := range courses {
		if err := r.writePlainln("%d\t%s\t%s", c.ID(), c.Name(), c.CreatedAt().Format("2006-01-02")); err != nil {
			return err
		}
	}
	return nil
}

// CourseDelete removes a course along with its lectures and transcripts.
func (r *Runner) CourseDelete(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := r.store.Courses().Delete(id, user.ID()); err != nil {
		return err
	}

	return r.writePlainln("Deleted course %d", id)
}
