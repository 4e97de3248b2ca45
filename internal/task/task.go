// Package task runs a blocking call in the background and exposes its
// progress as pending, success or failure.
package task

import (
	"context"
	"sync"
)

type State int

const (
	Pending State = iota
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "pending"
	}
}

// Task holds the eventual result of one call.
type Task[T any] struct {
	done   chan struct{}
	mu     sync.RWMutex
	state  State
	result T
	err    error
}

// Run starts fn in its own goroutine.
func Run[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		result, err := fn(ctx)
		t.mu.Lock()
		t.result, t.err = result, err
		if err != nil {
			t.state = Failure
		} else {
			t.state = Success
		}
		t.mu.Unlock()
		close(t.done)
	}()
	return t
}

// Completed returns a task that already succeeded with v.
func Completed[T any](v T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), state: Success, result: v}
	close(t.done)
	return t
}

// Failed returns a task that already failed with err.
func Failed[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), state: Failure, err: err}
	close(t.done)
	return t
}

func (t *Task[T]) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Result returns the outcome so far, zero values while pending.
func (t *Task[T]) Result() (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result, t.err
}

// Wait blocks until the task settles or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
