package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lectern/internal/kvstore"
	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/repositories"
	"github.com/desertthunder/lectern/internal/services"
	"github.com/desertthunder/lectern/internal/session"
	"github.com/desertthunder/lectern/internal/shared"
	"github.com/desertthunder/lectern/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	store      models.Store
	session    *session.Manager
	engine     tasks.NoteEngine
	summarizer services.Summarizer
	translator services.Translator
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Store      models.Store
	Session    *session.Manager
	Engine     tasks.NoteEngine
	Summarizer services.Summarizer
	Translator services.Translator
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		store:      opts.Store,
		session:    opts.Session,
		engine:     opts.Engine,
		summarizer: opts.Summarizer,
		translator: opts.Translator,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, e.g. to a file logger while the TUI
// owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, userCommand, courseCommand, lectureCommand,
		noteCommand, recordCommand, summarizeCommand, translateCommand,
		exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureStore opens the configured storage backend on first use. The
// --backend flag overrides the config file so one install can be pointed at
// either backend per invocation.
func (r *Runner) ensureStore(cmd *cli.Command) error {
	if r.store != nil {
		return nil
	}

	backend := cmd.String("backend")
	if backend == "" {
		backend = r.config.Database.Backend
	}

	switch backend {
	case "", "sqlite":
		store, err := repositories.Open(r.config.Database.Path)
		if err != nil {
			return err
		}
		r.store = store
	case "kv":
		store, err := kvstore.Open(r.config.Database.DataDir)
		if err != nil {
			return err
		}
		r.store = store
	default:
		return fmt.Errorf("%w: unknown backend %q", shared.ErrInvalidFlag, backend)
	}

	r.logger.Debug("storage backend ready", "backend", backend)
	return nil
}

// ensureSession restores the persisted login state on first use.
func (r *Runner) ensureSession(cmd *cli.Command) error {
	if err := r.ensureStore(cmd); err != nil {
		return err
	}

	if r.session == nil {
		r.session = session.NewManager(r.store.Users(), r.config.Session.TokenPath, r.logger)
	}

	return r.session.Restore()
}

// requireUser is the gate for every command that touches owned data.
func (r *Runner) requireUser(cmd *cli.Command) (*models.User, error) {
	if err := r.ensureSession(cmd); err != nil {
		return nil, err
	}

	user, err := r.session.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("%w: run 'lectern auth login' first", err)
	}
	return user, nil
}

// ensureEngine wires the note engine over the open store and any configured
// providers.
func (r *Runner) ensureEngine(cmd *cli.Command) error {
	if err := r.ensureStore(cmd); err != nil {
		return err
	}
	if r.engine != nil {
		return nil
	}

	if r.summarizer == nil {
		if svc, err := services.NewSummaryService(r.config.Providers.Summary); err == nil {
			r.summarizer = svc
		}
	}
	if r.translator == nil {
		if svc, err := services.NewTranslateService(r.config.Providers.Translate); err == nil {
			r.translator = svc
		}
	}

	r.engine = tasks.NewLectureEngine(r.store, r.summarizer, r.translator)
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// drainProgress logs progress updates until the channel closes.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate, done chan<- struct{}) {
	for update := range progress {
		r.writePlainln("%s", update.Message)
	}
	close(done)
}
