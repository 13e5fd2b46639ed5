package failure

import (
	"errors"
	"fmt"
	"testing"
)

func TestRetryf(t *testing.T) {
	err := Retryf("no door between %d,%d", 1, 2)
	if !IsRetryable(err) {
		t.Fatal("Retryf error is not retryable")
	}
	if got, want := err.Error(), "dungeon generation attempt failed: no door between 1,2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	wrapped := fmt.Errorf("layout %q: %w", "basic", err)
	if !IsRetryable(wrapped) {
		t.Error("wrapping lost the retryable marker")
	}
	if IsRetryable(errors.New("bad config")) {
		t.Error("plain error reported as retryable")
	}
	if errors.Is(err, ErrGenerationFailed) {
		t.Error("retryable error matches ErrGenerationFailed")
	}
}
