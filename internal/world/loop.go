package world

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Do once the loop no longer runs tasks.
var ErrLoopStopped = errors.New("world loop stopped")

type task struct {
	fn   func()
	done chan struct{}
}

// Loop runs functions one at a time on a single goroutine, the owner of a
// World. Everything that touches the World goes through Do.
type Loop struct {
	tasks    chan task
	stop     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a Loop. Call Run to start it.
func NewLoop() *Loop {
	return &Loop{
		tasks:  make(chan task),
		stop:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Run executes tasks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.exited)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case t := <-l.tasks:
			t.fn()
			close(t.done)
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case l.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stop:
		return ErrLoopStopped
	case <-l.exited:
		return ErrLoopStopped
	}
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
