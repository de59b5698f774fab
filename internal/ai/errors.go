package ai

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable      = errors.New("embedding provider not configured")
	ErrModelUnavailable = errors.New("embedding model unavailable")
	ErrEmptyInput       = errors.New("embedding input is empty")
)

// EmbedError is a per-call embedding failure.
type EmbedError struct {
	Provider string
	Err      error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embed via %s: %v", e.Provider, e.Err)
}

func (e *EmbedError) Unwrap() error {
	return e.Err
}

func wrapEmbedErr(provider string, err error) error {
	var embedErr *EmbedError
	if errors.As(err, &embedErr) {
		return err
	}
	return &EmbedError{Provider: provider, Err: err}
}
