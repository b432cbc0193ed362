// Package storage defines the durable key-value abstraction and its backends.
package storage

import (
	"errors"
	"io/fs"
)

// ErrNotExist is matched by errors returned from Get for a missing key.
var ErrNotExist = fs.ErrNotExist

// Provider is the interface for durable key-value operations.
// Values are opaque bytes; every Set replaces the whole value.
type Provider interface {
	// Get returns the value stored at key or an error matching ErrNotExist.
	Get(key string) ([]byte, error)
	// Set overwrites the value stored at key.
	Set(key string, value []byte) error
}

// IsNotExist reports whether err means the key is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
