package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// cycle is one Loading -> terminal pass of a controller
type cycle struct {
	gen    uint64
	key    string
	cancel context.CancelFunc
	done   chan struct{}
}

// loader runs fetch cycles and owns the resulting state. Starting a cycle
// cancels the previous one and bumps the generation; results from any other
// generation are dropped, so the last requested cycle always wins.
type loader[T any] struct {
	mu     sync.RWMutex
	state  State[T]
	gen    uint64
	cur    *cycle
	wg     sync.WaitGroup
	logger zerolog.Logger
}

func newLoader[T any](logger zerolog.Logger) *loader[T] {
	return &loader[T]{
		state:  Loading[T](),
		logger: logger,
	}
}

// start resets the state to Loading and runs fetch in the background
func (l *loader[T]) start(ctx context.Context, key string, fetch func(context.Context) State[T]) {
	cycleCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cur != nil {
		l.cur.cancel()
	}
	l.gen++
	c := &cycle{
		gen:    l.gen,
		key:    key,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	l.cur = c
	l.state = Loading[T]()
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer close(c.done)
		defer cancel()

		next := l.run(cycleCtx, c, fetch)
		l.apply(c, next)
	}()
}

func (l *loader[T]) run(ctx context.Context, c *cycle, fetch func(context.Context) State[T]) (next State[T]) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Interface("panic", r).Str("key", c.key).Msg("Fetch cycle panicked")
			next = Failed[T](fmt.Errorf("internal error: %v", r))
		}
	}()
	return fetch(ctx)
}

// apply stores next if c is still the current cycle
func (l *loader[T]) apply(c *cycle, next State[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c.gen != l.gen {
		l.logger.Debug().
			Str("key", c.key).
			Uint64("generation", c.gen).
			Uint64("current", l.gen).
			Msg("Discarding stale response")
		return false
	}

	l.state = next
	l.logger.Debug().
		Str("key", c.key).
		Str("status", next.Status().String()).
		Msg("Fetch cycle finished")
	return true
}

func (l *loader[T]) current() State[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// wait blocks until the current cycle is terminal. If a newer cycle starts
// while waiting, it waits for that one instead.
func (l *loader[T]) wait(ctx context.Context) error {
	for {
		l.mu.RLock()
		c := l.cur
		l.mu.RUnlock()

		if c == nil {
			return nil
		}

		select {
		case <-c.done:
		case <-ctx.Done():
			return ctx.Err()
		}

		l.mu.RLock()
		latest := l.cur == c
		l.mu.RUnlock()

		if latest {
			return nil
		}
	}
}

// stop cancels the in-flight cycle and drops whatever it returns
func (l *loader[T]) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cur != nil {
		l.cur.cancel()
		l.gen++
	}
}
