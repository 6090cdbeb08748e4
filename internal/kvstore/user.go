package kvstore

import (
	"fmt"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

// UserRepository implements [models.UserRepository] over the users collection.
type UserRepository struct {
	s *Store
}

// Create appends a new user record and returns its assigned id
func (r *UserRepository) Create(email, username, passwordHash string) (int64, error) {
	user := models.NewUser(email, username, passwordHash)
	if err := user.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[userRecord](r.s, usersFile)
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		if rec.Email == email {
			return 0, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, email)
		}
	}

	record := userRecord{
		ID:           nextID(records),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    user.CreatedAt(),
	}

	if err := writeCollection(r.s, usersFile, append(records, record)); err != nil {
		return 0, err
	}

	return record.ID, nil
}

// GetByEmail retrieves the full user record, password hash included
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[userRecord](r.s, usersFile)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Email == email {
			return rec.toModel(), nil
		}
	}

	return nil, fmt.Errorf("%w: user %s", shared.ErrNotFound, email)
}

// GetByID retrieves the public user shape with the password hash stripped
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[userRecord](r.s, usersFile)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec.toModel().Public(), nil
		}
	}

	return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
}

// UpdateUsername renames the user and returns the updated public record
func (r *UserRepository) UpdateUsername(id int64, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingField)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := readCollection[userRecord](r.s, usersFile)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		if rec.ID == id {
			records[i].Username = username
			if err := writeCollection(r.s, usersFile, records); err != nil {
				return nil, err
			}
			return records[i].toModel().Public(), nil
		}
	}

	return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
}

var _ models.UserRepository = (*UserRepository)(nil)
