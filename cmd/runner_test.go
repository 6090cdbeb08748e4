package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/desertthunder/lectern/internal/shared"
	tu "github.com/desertthunder/lectern/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

// newTestRunner wires a runner over the flat-file backend in a temp dir and
// returns it with its output buffer.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	tmpDir := t.TempDir()
	config := shared.DefaultConfig()
	config.Database.Backend = "kv"
	config.Database.DataDir = filepath.Join(tmpDir, "data")
	config.Session.TokenPath = filepath.Join(tmpDir, "session")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})

	return runner, output
}

// runCommand parses and runs one invocation against a fresh command tree.
// Command structs keep parsed flag state, so each invocation gets its own.
func runCommand(ctx context.Context, runner *Runner, args ...string) error {
	app := &cli.Command{
		Name: "lectern",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend"},
		},
		Commands: runner.register(),
	}
	return app.Run(ctx, append([]string{"lectern"}, args...))
}

func TestCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("commands require a login", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCommand(ctx, runner, "course", "list")
		if err == nil {
			t.Fatal("expected error without a session")
		}
		if !strings.Contains(err.Error(), "run 'lectern auth login' first") {
			t.Errorf("expected login hint, got %v", err)
		}
	})

	t.Run("register then manage courses and notes", func(t *testing.T) {
		runner, output := newTestRunner(t)

		run := func(args ...string) {
			t.Helper()
			if err := runCommand(ctx, runner, args...); err != nil {
				t.Fatalf("command %v failed: %v", args, err)
			}
		}

		run("auth", "register", "--email", "ada@example.com", "--password", "hunter22")
		if !strings.Contains(output.String(), "ada@example.com") {
			t.Errorf("expected registration confirmation, got %q", output.String())
		}

		run("course", "create", "Algorithms")
		run("course", "create", "Databases")

		output.Reset()
		run("course", "list", "--sort", "name")
		listing := output.String()
		if !strings.Contains(listing, "Algorithms") || !strings.Contains(listing, "Databases") {
			t.Errorf("expected both courses listed, got %q", listing)
		}
		if strings.Index(listing, "Algorithms") > strings.Index(listing, "Databases") {
			t.Error("expected name sort to list Algorithms first")
		}

		run("lecture", "create", "--course", "1", "--title", "Sorting", "--number", "1")

		run("note", "add", "--lecture", "1", "quicksort partitions around a pivot")
		run("note", "add", "--lecture", "1", "--kind", "transcript", "today we cover sorting")

		output.Reset()
		run("note", "list", "--lecture", "1", "--json")
		if !strings.Contains(output.String(), `"kind": "note"`) {
			t.Errorf("expected note entry in JSON output, got %q", output.String())
		}
		if !strings.Contains(output.String(), `"kind": "transcript"`) {
			t.Errorf("expected transcript entry in JSON output, got %q", output.String())
		}

		output.Reset()
		run("auth", "whoami")
		if !strings.Contains(output.String(), "ada@example.com") {
			t.Errorf("expected whoami to print the account, got %q", output.String())
		}
	})

	t.Run("note previews truncate on rune boundaries", func(t *testing.T) {
		runner, output := newTestRunner(t)

		setup := [][]string{
			{"auth", "register", "--email", "c@example.com", "--password", "secret1"},
			{"course", "create", "Französisch"},
			{"lecture", "create", "--course", "1", "--title", "Begrüßung"},
			{"note", "add", "--lecture", "1", strings.Repeat("é", 100)},
		}
		for _, args := range setup {
			if err := runCommand(ctx, runner, args...); err != nil {
				t.Fatalf("command %v failed: %v", args, err)
			}
		}

		output.Reset()
		if err := runCommand(ctx, runner, "note", "list", "--lecture", "1"); err != nil {
			t.Fatalf("note list failed: %v", err)
		}

		listing := output.String()
		if !utf8.ValidString(listing) {
			t.Errorf("expected valid UTF-8 preview, got %q", listing)
		}
		if !strings.Contains(listing, strings.Repeat("é", 69)+"...") {
			t.Errorf("expected preview cut at 69 runes, got %q", listing)
		}
	})

	t.Run("manual summary entries are rejected", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := runCommand(ctx, runner, "auth", "register", "--email", "b@example.com", "--password", "secret1"); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if err := runCommand(ctx, runner, "course", "create", "History"); err != nil {
			t.Fatalf("course create failed: %v", err)
		}
		if err := runCommand(ctx, runner, "lecture", "create", "--course", "1", "--title", "Rome"); err != nil {
			t.Fatalf("lecture create failed: %v", err)
		}

		err := runCommand(ctx, runner, "note", "add", "--lecture", "1", "--kind", "summary", "not allowed")
		if err == nil {
			t.Fatal("expected summary kind to be rejected")
		}
		if !strings.Contains(err.Error(), "summarize") {
			t.Errorf("expected hint at the summarize command, got %v", err)
		}
	})

	t.Run("unknown backend flag fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runCommand(ctx, runner, "--backend", "redis", "course", "list")
		if err == nil {
			t.Fatal("expected error for unknown backend")
		}
		if !strings.Contains(err.Error(), "unknown backend") {
			t.Errorf("expected unknown backend error, got %v", err)
		}
	})
}
