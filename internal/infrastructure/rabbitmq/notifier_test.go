package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/pkg/mailer"
)

type capturePublisher struct {
	bodies []any
	err    error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return p.err
}

func TestNotifier_WelcomeQueuesTemplateJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewNotifier(pub, "Todos")
	joined := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, n.Welcome(context.Background(), &entity.User{ID: "u1", Email: "a@x.com", CreatedAt: joined}))
	require.Len(t, pub.bodies, 1)

	job, ok := pub.bodies[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", job.To)
	assert.Equal(t, "welcome", job.Template)
	assert.Equal(t, "Todos", job.Data["AppName"])
	assert.Equal(t, "2024-05-01T12:00:00Z", job.Data["JoinedAt"])

	// the queued job must be renderable by the worker
	msg, err := mailer.Prepare(job)
	require.NoError(t, err)
	assert.Equal(t, "Todos: welcome aboard", msg.Subject)
}

func TestNotifier_PublishError(t *testing.T) {
	n := NewNotifier(&capturePublisher{err: errors.New("channel closed")}, "Todos")

	err := n.Welcome(context.Background(), &entity.User{Email: "a@x.com"})
	assert.EqualError(t, err, "channel closed")
}
