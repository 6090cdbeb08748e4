package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/lectern/internal/kvstore"
	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

func setupManager(t *testing.T) (*Manager, models.Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := kvstore.Open(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	tokenPath := filepath.Join(dir, ".session")
	logger := shared.NewLogger(&bytes.Buffer{})

	return NewManager(store.Users(), tokenPath, logger), store, tokenPath
}

func TestRegister(t *testing.T) {
	t.Run("creates and logs in", func(t *testing.T) {
		m, _, tokenPath := setupManager(t)

		user, err := m.Register("alice@example.com", "alice", "hunter22")
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if user.PasswordHash() != "" {
			t.Error("expected no password hash on returned user")
		}
		if !m.LoggedIn() {
			t.Error("expected active session after register")
		}
		if _, err := os.Stat(tokenPath); err != nil {
			t.Errorf("expected token file, got %v", err)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		m, _, _ := setupManager(t)

		if _, err := m.Register("not-an-email", "x", "hunter22"); !errors.Is(err, shared.ErrInvalidEmail) {
			t.Errorf("expected invalid email error, got %v", err)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		m, _, _ := setupManager(t)

		if _, err := m.Register("a@example.com", "x", "12345"); !errors.Is(err, shared.ErrShortPassword) {
			t.Errorf("expected short password error, got %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		m, _, _ := setupManager(t)

		if _, err := m.Register("a@example.com", "x", "hunter22"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if _, err := m.Register("a@example.com", "y", "hunter23"); !errors.Is(err, shared.ErrDuplicateEmail) {
			t.Errorf("expected duplicate email error, got %v", err)
		}
	})

	t.Run("defaults username from email", func(t *testing.T) {
		m, _, _ := setupManager(t)

		user, err := m.Register("carol@example.com", "", "hunter22")
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if user.Username() != "carol" {
			t.Errorf("expected derived username, got %s", user.Username())
		}
	})

	t.Run("stores a hash, not the password", func(t *testing.T) {
		m, store, _ := setupManager(t)

		if _, err := m.Register("a@example.com", "x", "hunter22"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		stored, err := store.Users().GetByEmail("a@example.com")
		if err != nil {
			t.Fatalf("failed to read stored user: %v", err)
		}
		if stored.PasswordHash() == "hunter22" {
			t.Error("password stored in plaintext")
		}
		if stored.PasswordHash() == "" {
			t.Error("expected stored hash")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("accepts the right password", func(t *testing.T) {
		m, _, _ := setupManager(t)

		if _, err := m.Register("a@example.com", "x", "hunter22"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if err := m.Logout(); err != nil {
			t.Fatalf("failed to logout: %v", err)
		}

		user, err := m.Login("a@example.com", "hunter22")
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		if user.PasswordHash() != "" {
			t.Error("expected no password hash on returned user")
		}
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		m, _, _ := setupManager(t)

		if _, err := m.Register("a@example.com", "x", "hunter22"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		_, errPass := m.Login("a@example.com", "wrong-password")
		_, errEmail := m.Login("ghost@example.com", "hunter22")

		if !errors.Is(errPass, shared.ErrInvalidCredentials) {
			t.Errorf("expected invalid credentials for wrong password, got %v", errPass)
		}
		if !errors.Is(errEmail, shared.ErrInvalidCredentials) {
			t.Errorf("expected invalid credentials for unknown email, got %v", errEmail)
		}
		if errPass.Error() != errEmail.Error() {
			t.Error("expected identical error text for both failure modes")
		}
	})
}

func TestRestore(t *testing.T) {
	t.Run("resumes a persisted session", func(t *testing.T) {
		m, store, tokenPath := setupManager(t)

		registered, err := m.Register("a@example.com", "x", "hunter22")
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		logger := shared.NewLogger(&bytes.Buffer{})
		fresh := NewManager(store.Users(), tokenPath, logger)
		if err := fresh.Restore(); err != nil {
			t.Fatalf("failed to restore: %v", err)
		}

		user, err := fresh.CurrentUser()
		if err != nil {
			t.Fatalf("expected restored session: %v", err)
		}
		if user.ID() != registered.ID() {
			t.Errorf("expected user %d, got %d", registered.ID(), user.ID())
		}
	})

	t.Run("missing token means logged out", func(t *testing.T) {
		m, _, _ := setupManager(t)

		if err := m.Restore(); err != nil {
			t.Fatalf("expected clean restore, got %v", err)
		}
		if m.LoggedIn() {
			t.Error("expected logged-out state")
		}
	})

	t.Run("malformed token is discarded", func(t *testing.T) {
		m, _, tokenPath := setupManager(t)

		if err := os.WriteFile(tokenPath, []byte("garbage"), 0600); err != nil {
			t.Fatalf("failed to write token: %v", err)
		}

		if err := m.Restore(); err != nil {
			t.Fatalf("expected clean restore, got %v", err)
		}
		if m.LoggedIn() {
			t.Error("expected logged-out state")
		}
		if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
			t.Error("expected token file removed")
		}
	})

	t.Run("stale token is discarded", func(t *testing.T) {
		m, _, tokenPath := setupManager(t)

		if err := os.WriteFile(tokenPath, []byte("9999"), 0600); err != nil {
			t.Fatalf("failed to write token: %v", err)
		}

		if err := m.Restore(); err != nil {
			t.Fatalf("expected clean restore, got %v", err)
		}
		if m.LoggedIn() {
			t.Error("expected logged-out state")
		}
	})
}

func TestLogout(t *testing.T) {
	m, _, tokenPath := setupManager(t)

	if _, err := m.Register("a@example.com", "x", "hunter22"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}
	if m.LoggedIn() {
		t.Error("expected logged-out state")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("expected token file removed")
	}

	// second logout is a no-op
	if err := m.Logout(); err != nil {
		t.Errorf("expected idempotent logout, got %v", err)
	}
}

func TestUpdateUsername(t *testing.T) {
	m, _, _ := setupManager(t)

	if _, err := m.UpdateUsername("nobody"); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("expected not authenticated error, got %v", err)
	}

	if _, err := m.Register("a@example.com", "x", "hunter22"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	user, err := m.UpdateUsername("xavier")
	if err != nil {
		t.Fatalf("failed to rename: %v", err)
	}
	if user.Username() != "xavier" {
		t.Errorf("expected renamed user, got %s", user.Username())
	}

	current, _ := m.CurrentUser()
	if current.Username() != "xavier" {
		t.Error("expected session to track the rename")
	}

	if _, err := m.UpdateUsername("   "); !errors.Is(err, shared.ErrMissingField) {
		t.Errorf("expected missing field error for blank name, got %v", err)
	}

	user, err = m.UpdateUsername("  yvonne  ")
	if err != nil {
		t.Fatalf("failed to rename with padding: %v", err)
	}
	if user.Username() != "yvonne" {
		t.Errorf("expected trimmed name, got %q", user.Username())
	}
}
