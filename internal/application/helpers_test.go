package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
)

const testSecret = "application-test-secret"

type fixture struct {
	auth   *AuthService
	todos  *TodoService
	jwt    *helpers.JWTManager
	logs   *test.Hook
	mailer *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger, hook := test.NewNullLogger()
	users := sqlite.NewUserRepository(db)
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	notifier := &fakeNotifier{}

	return &fixture{
		auth:   NewAuthService(users, helpers.NewPasswordHasher(bcrypt.MinCost), jwt, notifier, logger),
		todos:  NewTodoService(sqlite.NewTodoRepository(db), users, nil, nil, logger),
		jwt:    jwt,
		logs:   hook,
		mailer: notifier,
	}
}

// signup registers email and returns the identity a verified token would carry.
func (f *fixture) signup(t *testing.T, email string) entity.Requester {
	t.Helper()
	u, err := f.auth.Signup(context.Background(), email, "secret1")
	require.NoError(t, err)
	return entity.Requester{UserID: u.ID, Email: u.Email}
}

func (f *fixture) createTodo(t *testing.T, who entity.Requester, title string) *entity.Todo {
	t.Helper()
	td, err := f.todos.Create(context.Background(), CreateTodoInput{Title: title}, who)
	require.NoError(t, err)
	return td
}

type fakeNotifier struct {
	mu      sync.Mutex
	welcome []string
	err     error
}

func (n *fakeNotifier) Welcome(_ context.Context, u *entity.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcome = append(n.welcome, u.Email)
	return n.err
}

// fakeIndex matches substrings across every user, so the service's own
// ownership filter is what keeps results scoped.
type fakeIndex struct {
	mu    sync.Mutex
	docs  map[string]entity.Todo
	order []string
	extra []string // ids returned on every search, e.g. stale entries
	err   error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]entity.Todo{}} }

func (x *fakeIndex) Index(_ context.Context, t *entity.Todo) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	if _, ok := x.docs[t.ID]; !ok {
		x.order = append(x.order, t.ID)
	}
	x.docs[t.ID] = *t
	return nil
}

func (x *fakeIndex) Remove(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.docs, id)
	return x.err
}

func (x *fakeIndex) Search(_ context.Context, _ string, query string, limit int) ([]string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return nil, x.err
	}
	ids := append([]string{}, x.extra...)
	for _, id := range x.order {
		d, ok := x.docs[id]
		if ok && strings.Contains(strings.ToLower(d.Title), strings.ToLower(query)) {
			ids = append(ids, id)
		}
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeObjects struct {
	paths []string
	body  string
	err   error
}

func (o *fakeObjects) Put(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if o.err != nil {
		return "", o.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	o.paths = append(o.paths, objectPath)
	o.body = string(b)
	return "https://files.example/" + objectPath, nil
}

var errBoom = errors.New("boom")
