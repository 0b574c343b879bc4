// Package kv defines the persistence boundary: a string key-value store
// holding whole serialized collections under named slots.
package kv

import (
	"context"
	"errors"
	"regexp"
)

// Store is satisfied by any backend able to read and replace a value by key.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

var (
	ErrInvalidKey = errors.New("invalid key")
	ErrClosed     = errors.New("store closed")
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,127}$`)

// ValidateKey reports ErrInvalidKey for keys that are not portable across
// every backend (file names in particular).
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
