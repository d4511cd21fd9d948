// Package store persists users and tasks. Every task query is scoped by the
// owner's id in the statement itself, so a caller can never observe another
// user's rows, not even as a "forbidden" error.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"TASKTRACKER_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is owned by
	// someone else; the two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// TaskPatch is a partial task update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// UserRepository persists user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TaskRepository persists tasks. All lookups and mutations are filtered by
// ownerID inside the query.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error)
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, patch TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}
