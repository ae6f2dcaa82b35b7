// Package frame provides cooperative per-frame scheduling. Everything
// touching engine state runs on the goroutine which ticks the loop.
package frame

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Loop runs posted tasks and frame callbacks once per tick. Callbacks
// requested while a frame runs are executed on the next one. Scheduling
// methods are safe to call from any goroutine.
type Loop struct {
	log *zap.Logger

	mu      sync.Mutex
	posted  []func()
	pending []func()
	holds   int
	frame   uint64

	wake chan struct{}
}

func New(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		log:  log.Named("frame"),
		wake: make(chan struct{}, 1),
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RequestFrame schedules fn for the next frame.
func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
	l.signal()
}

// Post schedules fn to run on the loop goroutine before next frame
// callbacks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
	l.signal()
}

// Hold marks outstanding asynchronous work which will schedule more
// callbacks later, loop is not settled until returned release is called.
func (l *Loop) Hold() (release func()) {
	l.mu.Lock()
	l.holds++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.holds--
			l.mu.Unlock()
			l.signal()
		})
	}
}

// Frame returns number of the last started frame.
func (l *Loop) Frame() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}

// Tick runs one frame and returns number of executed callbacks.
func (l *Loop) Tick() int {
	l.mu.Lock()
	posted, pending := l.posted, l.pending
	l.posted, l.pending = nil, nil
	if len(pending) > 0 {
		l.frame++
	}
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
	for _, fn := range pending {
		fn()
	}
	return len(posted) + len(pending)
}

func (l *Loop) idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holds == 0 && len(l.posted) == 0 && len(l.pending) == 0
}

// Settle ticks loop until there is no scheduled work and nothing is held.
func (l *Loop) Settle(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return l.interrupted(err)
		}
		if l.Tick() > 0 {
			continue
		}
		if l.idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return l.interrupted(ctx.Err())
		case <-l.wake:
		}
	}
}

func (l *Loop) interrupted(err error) error {
	l.log.Debug("Frame loop interrupted", zap.Uint64("frame", l.Frame()), zap.Error(err))
	return err
}

// MeasureMutate runs layout read and the write depending on it together in
// the next frame.
func (l *Loop) MeasureMutate(measure, mutate func()) {
	l.RequestFrame(func() {
		measure()
		mutate()
	})
}
