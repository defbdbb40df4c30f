package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
)

func openTest(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createUser(t *testing.T, users *UserRepository, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	db := openTest(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	u := createUser(t, users, "a@x.com")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = users.GetByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound, "emails are matched as stored")

	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users := NewUserRepository(openTest(t))
	createUser(t, users, "a@x.com")

	err := users.Create(context.Background(), &entity.User{Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTodoRepository_CRUD(t *testing.T) {
	db := openTest(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()
	u := createUser(t, users, "a@x.com")

	todo := &entity.Todo{Title: "buy milk", UserID: u.ID}
	require.NoError(t, todos.Create(ctx, todo))
	assert.NotEmpty(t, todo.ID)

	got, err := todos.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Title)
	assert.Nil(t, got.Description)
	assert.False(t, got.Completed)
	assert.Equal(t, u.ID, got.UserID)

	desc := "two litres"
	got.Description = &desc
	got.Completed = true
	require.NoError(t, todos.Update(ctx, got))

	got, err = todos.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "two litres", *got.Description)
	assert.True(t, got.Completed)

	require.NoError(t, todos.Delete(ctx, todo.ID))
	_, err = todos.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, todos.Delete(ctx, todo.ID), repository.ErrNotFound)
	assert.ErrorIs(t, todos.Update(ctx, todo), repository.ErrNotFound)
}

func TestTodoRepository_RejectsUnknownOwner(t *testing.T) {
	todos := NewTodoRepository(openTest(t))

	err := todos.Create(context.Background(), &entity.Todo{Title: "orphan", UserID: "nobody"})
	assert.Error(t, err)
}

func TestTodoRepository_ListByOwnerIsScopedAndOrdered(t *testing.T) {
	db := openTest(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()
	alice := createUser(t, users, "alice@x.com")
	bob := createUser(t, users, "bob@x.com")

	var want []string
	for _, title := range []string{"one", "two", "three"} {
		td := &entity.Todo{Title: title, UserID: alice.ID}
		require.NoError(t, todos.Create(ctx, td))
		want = append(want, td.ID)
	}
	require.NoError(t, todos.Create(ctx, &entity.Todo{Title: "bob's", UserID: bob.ID}))

	list, err := todos.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	got := make([]string, 0, len(list))
	for _, td := range list {
		assert.Equal(t, alice.ID, td.UserID)
		got = append(got, td.ID)
	}
	assert.Equal(t, want, got)

	empty, err := todos.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTodoRepository_SearchByOwner(t *testing.T) {
	db := openTest(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()
	alice := createUser(t, users, "alice@x.com")
	bob := createUser(t, users, "bob@x.com")

	note := "remember 100% whole milk"
	require.NoError(t, todos.Create(ctx, &entity.Todo{Title: "Buy MILK", UserID: alice.ID}))
	require.NoError(t, todos.Create(ctx, &entity.Todo{Title: "groceries", Description: &note, UserID: alice.ID}))
	require.NoError(t, todos.Create(ctx, &entity.Todo{Title: "walk dog", UserID: alice.ID}))
	require.NoError(t, todos.Create(ctx, &entity.Todo{Title: "milk for bob", UserID: bob.ID}))

	hits, err := todos.SearchByOwner(ctx, alice.ID, "milk", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = todos.SearchByOwner(ctx, alice.ID, "100%", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "groceries", hits[0].Title)

	hits, err = todos.SearchByOwner(ctx, alice.ID, "milk", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestDeleteUserCascadesToTodos(t *testing.T) {
	db := openTest(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()
	u := createUser(t, users, "a@x.com")

	td := &entity.Todo{Title: "buy milk", UserID: u.ID}
	require.NoError(t, todos.Create(ctx, td))

	require.NoError(t, users.Delete(ctx, u.ID))

	_, err := todos.GetByID(ctx, td.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, u.ID), repository.ErrNotFound)
}
