// Package storage provides the durable key-value blob stores that persist the
// virtual file system. Every backend stores opaque byte blobs under string keys;
// the file system serializes its whole tree into one blob per mutation.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Store is the interface for durable blob backends.
type Store interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Type returns the backend identifier ("memory", "file", "postgres", "s3").
	Type() string

	// Close releases any resources held by the backend.
	Close() error
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
