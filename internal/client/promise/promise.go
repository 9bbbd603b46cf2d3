// Package promise provides a write-once future that any number of
// goroutines can wait on.
package promise

import (
	"context"
	"sync"
)

// Promise is settled exactly once, either with a value or with an error.
// Every Wait observes the same outcome.
type Promise[T any] struct {
	done  chan struct{}
	err   error
	value T
	once  sync.Once
}

// New creates a pending promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolve settles the promise with v. It reports false if the promise was
// already settled.
func (p *Promise[T]) Resolve(v T) bool {
	settled := false
	p.once.Do(func() {
		p.value = v
		close(p.done)
		settled = true
	})
	return settled
}

// Reject settles the promise with err.
func (p *Promise[T]) Reject(err error) bool {
	settled := false
	p.once.Do(func() {
		p.err = err
		close(p.done)
		settled = true
	})
	return settled
}

// Done returns a channel closed once the promise is settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Settled reports whether Resolve or Reject has been called.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the promise is settled or ctx is done.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
