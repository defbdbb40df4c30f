package gcs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
)

func TestObjectStore_Unconfigured(t *testing.T) {
	s := NewObjectStore(nil, "bucket")

	_, err := s.Put(context.Background(), "todos/u/t/x.txt", "text/plain", strings.NewReader("hi"))
	assert.EqualError(t, err, "gcs not configured")
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/bucket/todos/u1/t1/a.png",
		helpers.PublicURL("bucket", "todos/u1/t1/a.png"))
}
