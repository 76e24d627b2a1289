package world

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var got []int
	for i := 0; i < 5; i++ {
		if err := l.Do(ctx, func() { got = append(got, i) }); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran as %d", i, v)
		}
	}

	l.Stop()
	l.Stop()
	if err := <-done; err != nil {
		t.Errorf("Run = %v, want nil after Stop", err)
	}
	if err := l.Do(ctx, func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Do after Stop = %v, want ErrLoopStopped", err)
	}
}

func TestLoopContextCancel(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if err := l.Do(context.Background(), func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Do after exit = %v, want ErrLoopStopped", err)
	}
}

func TestDoRespectsCallerContext(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Do(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do without Run = %v, want DeadlineExceeded", err)
	}
}
