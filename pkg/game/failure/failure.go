// Package failure defines the two ways dungeon generation can fail.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryable marks a locally unsatisfiable constraint. The attempt is
	// discarded and generation starts again with fresh random choices.
	ErrRetryable = errors.New("dungeon generation attempt failed")

	// ErrGenerationFailed is returned once every candidate layout has run
	// out of attempts. The caller must give up on this quest.
	ErrGenerationFailed = errors.New("dungeon generation failed")
)

// Retryf returns a retryable error with a formatted reason
func Retryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRetryable, fmt.Sprintf(format, args...))
}

// IsRetryable reports whether err aborts only the current attempt
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryable)
}
