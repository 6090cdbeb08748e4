package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/lectern/internal/shared"
)

// Course groups a user's lectures.
type Course struct {
	id        int64
	userID    int64
	name      string
	createdAt time.Time
}

// NewCourse creates a Course pending persistence.
func NewCourse(userID int64, name string) *Course {
	return &Course{
		userID:    userID,
		name:      name,
		createdAt: time.Now(),
	}
}

func (c *Course) ID() int64            { return c.id }
func (c *Course) UserID() int64        { return c.userID }
func (c *Course) Name() string         { return c.name }
func (c *Course) CreatedAt() time.Time { return c.createdAt }

func (c *Course) SetID(id int64)           { c.id = id }
func (c *Course) SetCreatedAt(t time.Time) { c.createdAt = t }

// Validate checks the course's data before persistence.
func (c *Course) Validate() error {
	if c.userID == 0 {
		return fmt.Errorf("%w: user id", shared.ErrMissingField)
	}
	if c.name == "" {
		return fmt.Errorf("%w: course name", shared.ErrMissingField)
	}
	return nil
}
