package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and starts a session.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(cmd); err != nil {
		return err
	}

	user, err := r.session.Register(cmd.String("email"), cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}

	return r.writePlainln("Registered and logged in as %s <%s>", user.Username(), user.Email())
}

// AuthLogin verifies credentials and starts a session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(cmd); err != nil {
		return err
	}

	user, err := r.session.Login(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	return r.writePlainln("Logged in as %s <%s>", user.Username(), user.Email())
}

// AuthLogout ends the current session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(cmd); err != nil {
		return err
	}

	if err := r.session.Logout(); err != nil {
		return err
	}

	return r.writePlainln("Logged out")
}

// AuthWhoami prints the logged-in account.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(newUserView(user), true)
	}

	return r.writePlainln("%s <%s> (id %d)", user.Username(), user.Email(), user.ID())
}

// UserRename changes the logged-in account's display name.
func (r *Runner) UserRename(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireUser(cmd); err != nil {
		return err
	}

	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingField)
	}

	user, err := r.session.UpdateUsername(username)
	if err != nil {
		return err
	}

	return r.writePlainln("Renamed to %s", user.Username())
}
