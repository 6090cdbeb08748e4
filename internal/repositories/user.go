package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

// UserRepository implements [models.UserRepository] for account persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its generated id
func (r *UserRepository) Create(email, username, passwordHash string) (int64, error) {
	user := models.NewUser(email, username, passwordHash)
	if err := user.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (email, username, password_hash, created_at) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, email, username, passwordHash, user.CreatedAt())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, email)
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves the full user row, password hash included. This lookup
// exists for credential verification only.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM users
		WHERE email = ?
	`

	var (
		id           int64
		userEmail    string
		username     string
		passwordHash string
		createdAt    time.Time
	)

	err := r.db.QueryRow(query, email).Scan(&id, &userEmail, &username, &passwordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", shared.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user := models.NewUser(userEmail, username, passwordHash)
	user.SetID(id)
	user.SetCreatedAt(createdAt)

	return user, nil
}

// GetByID retrieves the public user shape; the password hash is never selected
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, username, created_at
		FROM users
		WHERE id = ?
	`

	var (
		userID    int64
		email     string
		username  string
		createdAt time.Time
	)

	err := r.db.QueryRow(query, id).Scan(&userID, &email, &username, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user := models.NewUser(email, username, "")
	user.SetID(userID)
	user.SetCreatedAt(createdAt)

	return user.Public(), nil
}

// UpdateUsername renames the user and returns the updated public record
func (r *UserRepository) UpdateUsername(id int64, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingField)
	}

	query := `
		UPDATE users
		SET username = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, username, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}

	return r.GetByID(id)
}
