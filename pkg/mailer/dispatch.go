package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/go-ddd-todo-api/pkg/mailer/templates"
)

// ErrBadJob marks jobs that can never be delivered and should not be requeued.
var ErrBadJob = errors.New("bad email job")

// Message is a fully rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Prepare renders the job's template, or passes raw content through.
func Prepare(job EmailJob) (Message, error) {
	if job.To == "" {
		return Message{}, fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return Message{}, fmt.Errorf("%w: subject and body required without template", ErrBadJob)
		}
		return Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}, nil
	}
	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Email"]; !ok {
		data["Email"] = job.To
	}
	subject, text, html, err := mailtpl.Render(job.Template, data)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	return Message{To: job.To, Subject: subject, Text: text, HTML: html}, nil
}

// Handle decodes a queue message body, renders it and sends it. Errors
// wrapping ErrBadJob are permanent; anything else may be retried.
func Handle(ctx context.Context, sender Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	msg, err := Prepare(job)
	if err != nil {
		return err
	}
	return sender.Send(ctx, msg.To, msg.Subject, msg.Text, msg.HTML)
}
