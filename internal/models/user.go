package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/lectern/internal/shared"
)

// User represents an account. The password hash is only populated on the
// login lookup path; everywhere else the public shape circulates.
type User struct {
	id           int64
	email        string
	username     string
	passwordHash string
	createdAt    time.Time
}

// NewUser creates a User pending persistence.
func NewUser(email, username, passwordHash string) *User {
	return &User{
		email:        email,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    time.Now(),
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) SetID(id int64)           { u.id = id }
func (u *User) SetUsername(name string)  { u.username = name }
func (u *User) SetCreatedAt(t time.Time) { u.createdAt = t }
func (u *User) SetPasswordHash(h string) { u.passwordHash = h }

// Public returns a copy of the user with the password hash stripped.
func (u *User) Public() *User {
	pub := *u
	pub.passwordHash = ""
	return &pub
}

// Validate checks the user's data before persistence.
func (u *User) Validate() error {
	if u.email == "" {
		return fmt.Errorf("%w: email", shared.ErrMissingField)
	}
	if u.username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingField)
	}
	if u.passwordHash == "" {
		return fmt.Errorf("%w: password hash", shared.ErrMissingField)
	}
	return nil
}
