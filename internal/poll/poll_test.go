package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLogger records debug lines so tests can see the give-up notice.
type memLogger struct {
	mu    sync.Mutex
	debug []string
}

func (l *memLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	l.debug = append(l.debug, format)
	l.mu.Unlock()
}
func (l *memLogger) Infof(string, ...any)  {}
func (l *memLogger) Warnf(string, ...any)  {}
func (l *memLogger) Errorf(string, ...any) {}

func (l *memLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.debug)
}

func TestRunner_StartStop(t *testing.T) {
	r := NewRunner(nil)
	assert.False(t, r.Active())
	assert.True(t, r.Start())
	assert.True(t, r.Active())
	assert.False(t, r.Start(), "double arm is refused")
	r.Stop()
	assert.False(t, r.Active())
	r.Stop() // idle no-op
	assert.True(t, r.Start(), "a stopped runner can be armed again")
	r.Stop()
}

func TestRunner_LoopsRefusedWhenIdle(t *testing.T) {
	r := NewRunner(nil)
	assert.False(t, r.Steady(time.Millisecond, func(context.Context) {}))
	assert.False(t, r.Burst(time.Millisecond, time.Millisecond, 3, func(context.Context) bool { return false }))
}

func TestRunner_Steady(t *testing.T) {
	r := NewRunner(nil)
	require.True(t, r.Start())
	var ticks atomic.Int32
	require.True(t, r.Steady(5*time.Millisecond, func(context.Context) { ticks.Add(1) }))

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
	r.Stop()
	frozen := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, ticks.Load(), "no runs after Stop")
}

func TestRunner_Steady_ImmediateFirstRun(t *testing.T) {
	r := NewRunner(nil)
	require.True(t, r.Start())
	defer r.Stop()
	ran := make(chan struct{})
	var once sync.Once
	require.True(t, r.Steady(time.Hour, func(context.Context) { once.Do(func() { close(ran) }) }))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("first run should not wait for the interval")
	}
}

func TestRunner_Burst_StopsOnSuccess(t *testing.T) {
	r := NewRunner(nil)
	require.True(t, r.Start())
	defer r.Stop()
	var calls atomic.Int32
	require.True(t, r.Burst(time.Millisecond, 2*time.Millisecond, 50, func(context.Context) bool {
		return calls.Add(1) == 3
	}))

	require.Eventually(t, func() bool { return calls.Load() == 3 }, 2*time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load(), "the loop ends at the first success")
}

func TestRunner_Burst_ExhaustsAttempts(t *testing.T) {
	log := &memLogger{}
	r := NewRunner(log)
	require.True(t, r.Start())
	defer r.Stop()
	var calls atomic.Int32
	require.True(t, r.Burst(time.Millisecond, time.Millisecond, 4, func(context.Context) bool {
		calls.Add(1)
		return false
	}))

	require.Eventually(t, func() bool { return log.count() == 1 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, int32(4), calls.Load())
}

func TestRunner_Stop_CancelsBurstWarmup(t *testing.T) {
	r := NewRunner(nil)
	require.True(t, r.Start())
	var calls atomic.Int32
	require.True(t, r.Burst(time.Hour, time.Millisecond, 5, func(context.Context) bool {
		calls.Add(1)
		return false
	}))

	done := make(chan struct{})
	go func() { r.Stop(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop should not wait out the warm-up")
	}
	assert.Zero(t, calls.Load())
}

func TestRunner_RestartSeparatesSessions(t *testing.T) {
	r := NewRunner(nil)
	require.True(t, r.Start())
	var first atomic.Int32
	require.True(t, r.Steady(2*time.Millisecond, func(context.Context) { first.Add(1) }))
	require.Eventually(t, func() bool { return first.Load() >= 2 }, 2*time.Second, time.Millisecond)
	r.Stop()
	stopped := first.Load()

	require.True(t, r.Start())
	var second atomic.Int32
	require.True(t, r.Steady(2*time.Millisecond, func(context.Context) { second.Add(1) }))
	require.Eventually(t, func() bool { return second.Load() >= 2 }, 2*time.Second, time.Millisecond)
	r.Stop()
	assert.Equal(t, stopped, first.Load(), "the first session's loop stays dead")
}
