package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
)

// TodoRepository defines the interface for todo persistence. Implementations
// never check ownership; that is the service's job.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	GetByID(ctx context.Context, id string) (*entity.Todo, error)
	// ListByOwner returns the owner's todos oldest first.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Todo, error)
	// SearchByOwner matches query against title and description, case-insensitively.
	SearchByOwner(ctx context.Context, userID, query string, limit int) ([]*entity.Todo, error)
	// Update persists title, description, completed and attachment URL.
	Update(ctx context.Context, t *entity.Todo) error
	Delete(ctx context.Context, id string) error
}
