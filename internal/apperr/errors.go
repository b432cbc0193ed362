// Package apperr holds the sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrRejected  = errors.New("workout rejected")
	ErrNoStorage = errors.New("no durable storage available")
)
