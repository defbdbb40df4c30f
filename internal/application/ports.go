package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
)

// PasswordHasher is a slow, salted one-way hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer signs bearer tokens for a user identity.
type TokenIssuer interface {
	Generate(userID, email string) (string, time.Time, error)
}

// Notifier sends out-of-band user notifications.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
}

// TodoIndex is a full-text index over todos. Search must only return ids of
// todos owned by userID.
type TodoIndex interface {
	Index(ctx context.Context, t *entity.Todo) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, userID, query string, limit int) ([]string, error)
}

// ObjectStore persists uploaded files and returns a URL for them.
type ObjectStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
