package utils

import (
	"context"
	"errors"
	"testing"
)

func TestRetrySingleAttempt(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 1, Logger: Discard()}
	calls := 0
	boom := errors.New("boom")

	err := r.Do(context.Background(), "fetch", func() error {
		calls++
		return boom
	})
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err: got %v, want %v", err, boom)
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, Logger: Discard()}
	calls := 0

	err := r.Do(context.Background(), "fetch", func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, Logger: Discard()}
	boom := errors.New("boom")

	err := r.Do(context.Background(), "fetch", func() error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("err: got %v, want wrapped %v", err, boom)
	}
}
