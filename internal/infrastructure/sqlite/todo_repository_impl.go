package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
)

const todoColumns = `id, title, description, completed, user_id, attachment_url, created_at, updated_at`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*entity.Todo, error) {
	t := &entity.Todo{}
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID,
		&t.AttachmentURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todo (id, title, description, completed, user_id, attachment_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, t.Title, t.Description, t.Completed, t.UserID, t.AttachmentURL, now, now)
	if err != nil {
		return err
	}
	t.ID, t.CreatedAt, t.UpdatedAt = id, now, now
	return nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todo WHERE id = ?`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return t, err
}

func (r *TodoRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Todo, error) {
	return r.list(ctx, `
		SELECT `+todoColumns+`
		FROM todo
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, userID)
}

func (r *TodoRepository) SearchByOwner(ctx context.Context, userID, query string, limit int) ([]*entity.Todo, error) {
	pattern := likePattern(query)
	return r.list(ctx, `
		SELECT `+todoColumns+`
		FROM todo
		WHERE user_id = ?
		  AND (title LIKE ? ESCAPE '\' OR IFNULL(description, '') LIKE ? ESCAPE '\')
		ORDER BY created_at ASC, rowid ASC
		LIMIT ?
	`, userID, pattern, pattern, limit)
}

func (r *TodoRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, t *entity.Todo) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE todo
		SET title = ?, description = ?, completed = ?, attachment_url = ?, updated_at = ?
		WHERE id = ?
	`, t.Title, t.Description, t.Completed, t.AttachmentURL, now, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	t.UpdatedAt = now
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todo WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
