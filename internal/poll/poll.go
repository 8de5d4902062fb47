// Package poll owns the goroutines behind a tracker session: the
// fixed-interval steady loop and the short-lived burst loops spawned for
// newly submitted tasks. Every loop is bound to the session context, so
// tearing the session down stops them all.
package poll

import (
	"context"
	"sync"
	"time"
)

// Logger is a minimal logging interface used internally by the poller.
// It mirrors the public logger in the root package to avoid an import cycle.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// Runner tracks the context and wait group shared by every loop started for
// one tracker session. A Runner can be armed and torn down repeatedly.
type Runner struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    Logger
}

// NewRunner creates an idle runner. A nil logger disables runner diagnostics.
func NewRunner(log Logger) *Runner {
	if log == nil {
		log = noopLogger{}
	}
	return &Runner{log: log}
}

// Start arms a fresh session context. It reports false when the runner is
// already armed.
func (r *Runner) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx != nil {
		return false
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	return true
}

// Stop cancels the session context and waits for every loop to exit. It is a
// no-op on an idle runner.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.ctx == nil {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	r.ctx, r.cancel = nil, nil
	r.mu.Unlock()
	cancel()
	r.wg.Wait()
}

// Active reports whether the runner currently has an armed session.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctx != nil
}

// Steady runs fn immediately and then once per interval until the session
// ends. It reports false when the runner is idle.
func (r *Runner) Steady(interval time.Duration, fn func(ctx context.Context)) bool {
	ctx, ok := r.session()
	if !ok {
		return false
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
	return true
}

// Burst waits out the warm-up delay, then runs fn up to attempts times, once
// per interval, stopping early when fn reports it is done or the session
// ends. Exhausting the attempts is not an error. It reports false when the
// runner is idle.
func (r *Runner) Burst(warmup, interval time.Duration, attempts int, fn func(ctx context.Context) bool) bool {
	ctx, ok := r.session()
	if !ok {
		return false
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		timer := time.NewTimer(warmup)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; i < attempts; i++ {
			if i > 0 {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
			if fn(ctx) {
				return
			}
		}
		r.log.Debugf("burst: gave up after %d attempts", attempts)
	}()
	return true
}

func (r *Runner) session() (context.Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx == nil {
		return nil, false
	}
	return r.ctx, true
}
