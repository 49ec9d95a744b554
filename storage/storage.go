// Package storage keeps uploaded files for the reference backend, either on
// local disk or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("file not found")

// Store saves and serves uploaded files by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds a unique object key under prefix that keeps the original
// file extension.
func NewKey(prefix, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(fileName)))
	return path.Join(prefix, uuid.NewString()+ext)
}

// validKey rejects keys that could escape the store root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
