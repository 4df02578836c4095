package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForUsesSleep(t *testing.T) {
	originalSleep := sleep
	var slept time.Duration
	sleep = func(d time.Duration) { slept = d }
	defer func() { sleep = originalSleep }()

	if err := WaitFor(context.Background(), 100*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 100*time.Millisecond {
		t.Fatalf("expected 100ms sleep, got %v", slept)
	}
}

func TestWaitForHonoursCancellation(t *testing.T) {
	originalSleep := sleep
	release := make(chan struct{})
	sleep = func(time.Duration) { <-release }
	defer func() {
		close(release)
		sleep = originalSleep
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTakeInts(t *testing.T) {
	items := []int{1, 2, 3}
	if got := Take(items, 2); len(got) != 2 || got[1] != 2 {
		t.Fatalf("unexpected result: %v", got)
	}
	if got := Take(items, 10); len(got) != 3 {
		t.Fatalf("unexpected result: %v", got)
	}
	if got := Take(items, -1); len(got) != 0 {
		t.Fatalf("unexpected result: %v", got)
	}
}
