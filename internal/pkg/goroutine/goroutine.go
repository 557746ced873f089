// Package goroutine runs background jobs with a concurrency cap, panic
// recovery and a single place to wait for them on shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/postlearn/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine = 100

var (
	// ErrClosed is returned by Go after Wait was called.
	ErrClosed = errors.New("goroutine manager is closed")
	// ErrLimitReached is returned by Go when every slot is busy.
	ErrLimitReached = errors.New("goroutine limit reached")
)

// Manager runs functions in goroutines, at most max at a time. Errors
// returned by the functions are collected and reported by Wait.
type Manager struct {
	sema chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
	errs   []error
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go starts f unless the manager is closed or full; it never blocks. The
// job's context is detached from ctx's cancellation so a finished request
// does not abort work it scheduled.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, job dropped", "job", name)
		return ErrClosed
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, job dropped", "job", name)
		return ErrLimitReached
	}

	jobCtx := context.WithoutCancel(ctx)
	g.wg.Go(func() {
		defer func() { <-g.sema }()
		defer g.recover(jobCtx, name)

		if err := f(jobCtx); err != nil {
			slog.ErrorContext(jobCtx, "background job failed", "job", name, "error", err)
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	})

	return nil
}

func (g *Manager) recover(ctx context.Context, name string) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "job", name, "because", rvr, "stack", paths)
	} else {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "job", name, "because", rvr, "stack", string(stack))
	}
}

// Wait closes the manager and blocks until every started job finished.
func (g *Manager) Wait() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
