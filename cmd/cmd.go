// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes configuration and storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage accounts and sessions",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "username",
						Usage: "Display name (defaults to the email local part)",
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password (6 characters minimum)",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:  "whoami",
				Usage: "Show the logged-in account",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// userCommand handles profile operations
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage the logged-in account",
		Commands: []*cli.Command{
			{
				Name:  "rename",
				Usage: "Change the display name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.UserRename,
			},
		},
	}
}

// courseCommand handles course operations
func courseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "course",
		Usage: "Manage courses",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a course",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.CourseCreate,
			},
			{
				Name:  "list",
				Usage: "List your courses",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: date or name",
						Value: "date",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CourseList,
			},
			{
				Name:  "delete",
				Usage: "Delete a course and everything in it",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Course ID",
						Required: true,
					},
				},
				Action: r.CourseDelete,
			},
		},
	}
}

// lectureCommand handles lecture operations
func lectureCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lecture",
		Usage: "Manage lectures within a course",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a lecture",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "course",
						Usage:    "Course ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Lecture title",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "number",
						Usage: "Lecture number within the course",
					},
				},
				Action: r.LectureCreate,
			},
			{
				Name:  "list",
				Usage: "List lectures in a course",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "course",
						Usage:    "Course ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LectureList,
			},
			{
				Name:  "delete",
				Usage: "Delete a lecture and its transcripts",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Lecture ID",
						Required: true,
					},
				},
				Action: r.LectureDelete,
			},
		},
	}
}

// noteCommand handles transcript and note operations
func noteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Manage transcripts and notes",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a note or transcript to a lecture",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "content"},
				},
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "lecture",
						Usage:    "Lecture ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Entry kind: transcript or note",
						Value: "note",
					},
				},
				Action: r.NoteAdd,
			},
			{
				Name:  "list",
				Usage: "List a lecture's entries in creation order",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "lecture",
						Usage:    "Lecture ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.NoteList,
			},
			{
				Name:  "show",
				Usage: "Show one entry in full",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Entry ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.NoteShow,
			},
			{
				Name:  "edit",
				Usage: "Replace an entry's content",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "content"},
				},
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Entry ID",
						Required: true,
					},
				},
				Action: r.NoteEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete an entry",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Entry ID",
						Required: true,
					},
				},
				Action: r.NoteDelete,
			},
		},
	}
}

// recordCommand captures audio and stores the transcription
func recordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "Transcribe an audio recording into a lecture",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "lecture",
				Usage:    "Lecture ID to attach the transcript to",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the recorded audio file",
				Required: true,
			},
		},
		Action: r.Record,
	}
}

// summarizeCommand condenses a lecture into a summary
func summarizeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "summarize",
		Usage: "Summarize a lecture's transcripts and notes",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "lecture",
				Usage:    "Lecture ID",
				Required: true,
			},
		},
		Action: r.Summarize,
	}
}

// translateCommand renders an entry in another language
func translateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "translate",
		Usage: "Translate an entry without changing the stored original",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "Entry ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Target language code (es, fr, ...)",
				Required: true,
			},
		},
		Action: r.Translate,
	}
}

// exportCommand writes a course's lectures to files
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a course's lectures to files",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "course",
				Usage:    "Course ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: markdown, csv, or text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing notes",
		Action:  r.TUI,
	}
}
