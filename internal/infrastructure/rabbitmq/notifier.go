package rabbitmq

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-todo-api/pkg/mailer/templates"
)

// JSONPublisher is the part of helpers.RabbitPublisher the notifier needs.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier queues user emails for cmd/email_worker.
type Notifier struct {
	Pub     JSONPublisher
	AppName string
}

func NewNotifier(pub JSONPublisher, appName string) *Notifier {
	return &Notifier{Pub: pub, AppName: appName}
}

// Welcome enqueues the welcome email for a freshly registered user.
func (n *Notifier) Welcome(ctx context.Context, u *entity.User) error {
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: mailtpl.WelcomeData{
			AppName:  n.AppName,
			Email:    u.Email,
			JoinedAt: u.CreatedAt,
		}.ToMap(),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
