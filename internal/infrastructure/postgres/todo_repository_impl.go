package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
)

const todoColumns = `id, title, description, completed, user_id, attachment_url, created_at, updated_at`

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func scanTodo(row pgx.Row) (*entity.Todo, error) {
	t := &entity.Todo{}
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID,
		&t.AttachmentURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todo (title, description, completed, user_id, attachment_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.Completed, t.UserID, t.AttachmentURL)
	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	t, err := scanTodo(r.pool.QueryRow(ctx, `SELECT `+todoColumns+` FROM todo WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return t, err
}

func (r *TodoRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Todo, error) {
	return r.list(ctx, `
		SELECT `+todoColumns+`
		FROM todo
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
}

func (r *TodoRepository) SearchByOwner(ctx context.Context, userID, query string, limit int) ([]*entity.Todo, error) {
	return r.list(ctx, `
		SELECT `+todoColumns+`
		FROM todo
		WHERE user_id = $1
		  AND (title ILIKE $2 OR coalesce(description, '') ILIKE $2)
		ORDER BY created_at ASC, id ASC
		LIMIT $3
	`, userID, likePattern(query), limit)
}

func (r *TodoRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Todo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
	row := r.pool.QueryRow(ctx, `
		UPDATE todo
		SET title = $1, description = $2, completed = $3, attachment_url = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, t.Title, t.Description, t.Completed, t.AttachmentURL, t.ID)
	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
