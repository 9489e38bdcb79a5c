package blogsync

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConnected means the actor is not available yet. No call was attempted.
	ErrNotConnected = errors.New("not connected")
	// ErrValidation means a required field was empty. No call was attempted.
	ErrValidation = errors.New("validation failed")
	// ErrRemote wraps a failed actor call.
	ErrRemote = errors.New("remote call failed")
	// ErrPostNotFound means neither the cache nor the actor know the post.
	ErrPostNotFound = errors.New("post not found")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func remoteError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrRemote, err)
}
