package navigation

import (
	"context"
	"sync"
)

// Transition is a future of a single navigation request.
type Transition struct {
	target string
	once   sync.Once
	done   chan struct{}
	err    error
}

func newTransition(target string) *Transition {
	return &Transition{target: target, done: make(chan struct{})}
}

func resolved(target string, err error) *Transition {
	t := newTransition(target)
	t.resolve(err)
	return t
}

func (t *Transition) resolve(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Target returns requested page id.
func (t *Transition) Target() string {
	return t.target
}

// Done is closed when transition finished or was abandoned.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Err returns transition result, nil until Done is closed.
func (t *Transition) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Resolved reports whether transition has finished.
func (t *Transition) Resolved() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until transition finishes. Frame loop must be running on
// another goroutine.
func (t *Transition) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return t.err
	}
}
