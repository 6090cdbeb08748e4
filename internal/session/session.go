// package session manages account registration, credential verification, and
// the persisted login state of the CLI.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// Manager owns the authentication lifecycle. The logged-in user id persists
// in a token file so sessions survive process restarts.
type Manager struct {
	users     models.UserRepository
	tokenPath string
	logger    *log.Logger

	current *models.User
}

// NewManager creates a Manager over the given user repository. The token file
// at tokenPath is read lazily by [Manager.Restore].
func NewManager(users models.UserRepository, tokenPath string, logger *log.Logger) *Manager {
	return &Manager{users: users, tokenPath: tokenPath, logger: logger}
}

// Restore loads the persisted session, if any. A missing token file means a
// logged-out state, not an error. A token pointing at a deleted user is
// discarded the same way.
func (m *Manager) Restore() error {
	data, err := os.ReadFile(m.tokenPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session token: %w", err)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		m.logger.Warn("discarding malformed session token", "path", m.tokenPath)
		return m.clearToken()
	}

	user, err := m.users.GetByID(id)
	if errors.Is(err, shared.ErrNotFound) {
		m.logger.Warn("discarding stale session token", "user_id", id)
		return m.clearToken()
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	m.current = user
	return nil
}

// Register creates a new account and logs it in. The plaintext password never
// touches disk; only its bcrypt hash is stored.
func (m *Manager) Register(email, username, password string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidEmail, email)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: minimum %d characters", shared.ErrShortPassword, minPasswordLen)
	}
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := m.users.Create(email, username, string(hash))
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load new account: %w", err)
	}

	if err := m.writeToken(id); err != nil {
		return nil, err
	}

	m.current = user
	m.logger.Info("registered account", "email", email, "user_id", id)
	return user, nil
}

// Login verifies the credentials and persists the session. Unknown emails and
// wrong passwords produce the same error so the response does not reveal
// which accounts exist.
func (m *Manager) Login(email, password string) (*models.User, error) {
	user, err := m.users.GetByEmail(email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	if err := m.writeToken(user.ID()); err != nil {
		return nil, err
	}

	m.current = user.Public()
	m.logger.Info("logged in", "email", email, "user_id", user.ID())
	return m.current, nil
}

// Logout clears the in-memory session and removes the token file. Logging out
// while already logged out is a no-op.
func (m *Manager) Logout() error {
	m.current = nil
	return m.clearToken()
}

// CurrentUser returns the logged-in user, or [shared.ErrNotAuthenticated].
func (m *Manager) CurrentUser() (*models.User, error) {
	if m.current == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return m.current, nil
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.current != nil
}

// UpdateUsername renames the logged-in user. The name is trimmed and must not
// be empty after trimming.
func (m *Manager) UpdateUsername(username string) (*models.User, error) {
	if m.current == nil {
		return nil, shared.ErrNotAuthenticated
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingField)
	}

	user, err := m.users.UpdateUsername(m.current.ID(), username)
	if err != nil {
		return nil, err
	}

	m.current = user
	return user, nil
}

func (m *Manager) writeToken(id int64) error {
	if dir := filepath.Dir(m.tokenPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}

	if err := os.WriteFile(m.tokenPath, []byte(strconv.FormatInt(id, 10)), 0600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	return nil
}

func (m *Manager) clearToken() error {
	err := os.Remove(m.tokenPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}
