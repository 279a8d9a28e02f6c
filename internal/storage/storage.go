// Package storage defines the key-value blob store that backs tile and
// profile persistence, and the key layout shared by every backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists opaque byte blobs by string key.
//
// Keys are slash-separated paths such as "world_tiles/00-01-00". Writes
// overwrite unconditionally; there is no merge and no optimistic concurrency.
type BlobStore interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores data under key, creating any backing location as needed.
	Put(ctx context.Context, key string, data []byte) error
	// Exists reports whether a blob is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// ValidateKey checks that key is usable by every backend.
//
// Postcondition: Returns nil iff key is non-empty, has no empty, "." or ".."
// segments, and contains no backslashes.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("storage key must not be empty")
	}
	if strings.ContainsRune(key, '\\') {
		return fmt.Errorf("storage key %q must not contain backslashes", key)
	}
	for _, seg := range strings.Split(key, "/") {
		switch seg {
		case "", ".", "..":
			return fmt.Errorf("storage key %q has an invalid segment %q", key, seg)
		}
	}
	return nil
}

// JoinKey builds a key from a prefix and a name.
func JoinKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
