package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type TodoService struct {
	Todos   repo.TodoRepository
	Users   repo.UserRepository
	Index   TodoIndex   // optional; store search is used when nil
	Objects ObjectStore // optional; attachments are disabled when nil
	Logger  logrus.FieldLogger
}

func NewTodoService(todos repo.TodoRepository, users repo.UserRepository, index TodoIndex, objects ObjectStore, logger logrus.FieldLogger) *TodoService {
	return &TodoService{Todos: todos, Users: users, Index: index, Objects: objects, Logger: logger}
}

// CreateTodoInput is a validated create request.
type CreateTodoInput struct {
	Title       string
	Description *string
}

// UpdateTodoInput is a partial update; nil fields are left unchanged.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Attachment is an uploaded file to store alongside a todo.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Create persists a new todo owned by the requester.
func (s *TodoService) Create(ctx context.Context, in CreateTodoInput, who entity.Requester) (*entity.Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	owner, err := s.Users.GetByID(ctx, who.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	t := &entity.Todo{
		Title:       in.Title,
		Description: in.Description,
		UserID:      owner.ID,
	}
	if err := s.Todos.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	counters.Add(metricTodosCreated, 1)
	s.reindex(ctx, t)
	return t, nil
}

// ListMine returns the requester's todos, oldest first.
func (s *TodoService) ListMine(ctx context.Context, who entity.Requester) ([]*entity.Todo, error) {
	todos, err := s.Todos.ListByOwner(ctx, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// GetOne loads a todo and checks ownership. A missing id is ErrTodoNotFound;
// an existing todo owned by someone else is ErrNotOwner.
func (s *TodoService) GetOne(ctx context.Context, id string, who entity.Requester) (*entity.Todo, error) {
	return s.authorize(ctx, id, who)
}

// Update applies the non-nil fields of in to the requester's todo.
func (s *TodoService) Update(ctx context.Context, id string, in UpdateTodoInput, who entity.Requester) (*entity.Todo, error) {
	t, err := s.authorize(ctx, id, who)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if err := s.Todos.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	s.reindex(ctx, t)
	return t, nil
}

// Remove deletes the requester's todo.
func (s *TodoService) Remove(ctx context.Context, id string, who entity.Requester) error {
	t, err := s.authorize(ctx, id, who)
	if err != nil {
		return err
	}
	if err := s.Todos.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	counters.Add(metricTodosDeleted, 1)
	if s.Index != nil {
		if iErr := s.Index.Remove(ctx, t.ID); iErr != nil {
			s.indexFailed(iErr, t.ID, "remove")
		}
	}
	return nil
}

// Search finds the requester's todos matching query. Hits from the index
// are re-checked against the store so a stale index never leaks a todo.
func (s *TodoService) Search(ctx context.Context, query string, limit int, who entity.Requester) ([]*entity.Todo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.Index == nil {
		todos, err := s.Todos.SearchByOwner(ctx, who.UserID, query, limit)
		if err != nil {
			return nil, fmt.Errorf("search todos: %w", err)
		}
		return todos, nil
	}

	ids, err := s.Index.Search(ctx, who.UserID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	out := make([]*entity.Todo, 0, len(ids))
	for _, id := range ids {
		t, err := s.authorize(ctx, id, who)
		switch {
		case err == nil:
			out = append(out, t)
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
			continue
		default:
			return nil, err
		}
	}
	return out, nil
}

// AttachFile uploads a file for the requester's todo and records its URL.
func (s *TodoService) AttachFile(ctx context.Context, id string, file Attachment, who entity.Requester) (*entity.Todo, error) {
	if s.Objects == nil {
		return nil, ErrAttachmentsOff
	}
	t, err := s.authorize(ctx, id, who)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	objectPath := path.Join("todos", t.UserID, t.ID, uuid.NewString()+ext)
	url, err := s.Objects.Put(ctx, objectPath, file.ContentType, file.Body)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	t.AttachmentURL = &url
	if err := s.Todos.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	s.reindex(ctx, t)
	return t, nil
}

// authorize is the single ownership check: existence first, then owner.
func (s *TodoService) authorize(ctx context.Context, id string, who entity.Requester) (*entity.Todo, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}
	// stores hold the canonical lowercase form only
	t, err := s.Todos.GetByID(ctx, parsed.String())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	if !t.OwnedBy(who.UserID) {
		return nil, ErrNotOwner
	}
	return t, nil
}

func (s *TodoService) reindex(ctx context.Context, t *entity.Todo) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, t); err != nil {
		s.indexFailed(err, t.ID, "index")
	}
}

func (s *TodoService) indexFailed(err error, todoID, op string) {
	counters.Add(metricIndexErrors, 1)
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"todo_id": todoID, "op": op}).Warn("todo index update failed")
	}
}
