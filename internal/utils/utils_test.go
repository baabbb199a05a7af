package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		expect  time.Duration
	}{
		{attempt: 0, expect: 100 * time.Millisecond},
		{attempt: 1, expect: 100 * time.Millisecond},
		{attempt: 2, expect: 200 * time.Millisecond},
		{attempt: 3, expect: 400 * time.Millisecond},
		{attempt: 10, expect: time.Second},
	}

	for _, tt := range tests {
		if got := Backoff(100*time.Millisecond, time.Second, tt.attempt); got != tt.expect {
			t.Fatalf("attempt %d: expected %s, got %s", tt.attempt, tt.expect, got)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(54.6437); got != 54.6 {
		t.Fatalf("expected 54.6, got %v", got)
	}
	if got := Round1(38.88); got != 38.9 {
		t.Fatalf("expected 38.9, got %v", got)
	}
}
