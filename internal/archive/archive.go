// Package archive keeps exported report files.
package archive

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotFound = errors.New("archived file not found")

type Archive interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (key string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Entry, error)
}

// Entry describes one archived file.
type Entry struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}
