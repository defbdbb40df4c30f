package gcs

import (
	"context"
	"errors"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
)

const uploadTimeout = 30 * time.Second

// ObjectStore uploads todo attachments to a single bucket.
type ObjectStore struct {
	Client *storage.Client
	Bucket string
}

func NewObjectStore(client *storage.Client, bucket string) *ObjectStore {
	return &ObjectStore{Client: client, Bucket: bucket}
}

// Put uploads r to objectPath and returns the object's public URL.
func (s *ObjectStore) Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s.Client == nil || s.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()
	return helpers.UploadObject(c, s.Client, s.Bucket, objectPath, contentType, r)
}
