package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills ID and timestamps. It returns ErrDuplicate
	// when the email is already registered.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Delete removes the user; the database cascades to their todos.
	Delete(ctx context.Context, id string) error
}
