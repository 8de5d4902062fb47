package paperwave

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Paperwave/paperwave-go/internal/poll"
)

// TrackerConfig defines the configuration for a Tracker. The zero value is
// usable: every field falls back to the documented default.
type TrackerConfig struct {
	// PollInterval is the steady listing cadence. Default 3s.
	PollInterval time.Duration
	// BurstWarmup is the delay before a burst loop's first fetch. Default 500ms.
	BurstWarmup time.Duration
	// BurstInterval is the fetch cadence inside a burst loop. Default 1s.
	BurstInterval time.Duration
	// BurstAttempts caps the fetches one burst loop may make. Default 30.
	BurstAttempts int
	// Logger receives tracker diagnostics. Default FmtLogger.
	Logger Logger
	// Notifier receives notification events. Default logs through Logger.
	Notifier Notifier
	// Cache, when set, is flushed every time a task completes.
	Cache *ListingCache
}

const (
	defaultPollInterval  = 3 * time.Second
	defaultBurstWarmup   = 500 * time.Millisecond
	defaultBurstInterval = time.Second
	defaultBurstAttempts = 30
)

// Tracker maintains a locally consistent view of the workspace's ingestion
// tasks by polling the listing endpoint, and emits a notification event
// exactly once per terminal transition.
//
// All reconciliation passes and store mutations are serialized on one mutex;
// fetches overlap freely (steady, burst, refresh and cancel requests may all
// be in flight at once). Whichever fetch resolves last wins, which is safe
// because snapshots are full-state documents and every pass diffs against the
// store contents at the moment it acquires the lock.
type Tracker struct {
	client *Client
	cfg    TrackerConfig
	log    Logger
	notify Notifier
	runner *poll.Runner

	mu        sync.Mutex
	st        taskStore
	listeners []func()
	started   bool

	fetching atomic.Int32
	failures atomic.Int32
}

// NewTracker creates a tracker over the given API client.
func NewTracker(client *Client, cfg TrackerConfig) *Tracker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BurstWarmup <= 0 {
		cfg.BurstWarmup = defaultBurstWarmup
	}
	if cfg.BurstInterval <= 0 {
		cfg.BurstInterval = defaultBurstInterval
	}
	if cfg.BurstAttempts <= 0 {
		cfg.BurstAttempts = defaultBurstAttempts
	}
	if cfg.Logger == nil {
		cfg.Logger = NewFmtLogger()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = logNotifier{log: cfg.Logger}
	}
	return &Tracker{
		client: client,
		cfg:    cfg,
		log:    cfg.Logger,
		notify: cfg.Notifier,
		runner: poll.NewRunner(runnerLogger{cfg.Logger}),
	}
}

// Start begins steady polling with an immediate first fetch. It is idempotent
// and non-blocking, and may be called again after Stop.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.started {
		t.log.Warnf("tracker already started; ignoring Start()")
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()
	t.log.Infof("starting tracker: poll=%s burst=%s x%d", t.cfg.PollInterval, t.cfg.BurstInterval, t.cfg.BurstAttempts)
	t.runner.Start()
	t.runner.Steady(t.cfg.PollInterval, func(ctx context.Context) {
		if err := t.pollOnce(ctx); err != nil {
			t.log.Warnf("steady poll failed (consecutive failures: %d): %v", t.failures.Load(), err)
		}
	})
}

// Stop tears down the steady loop and any in-flight bursts, waiting for them
// to exit. It is idempotent.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.log.Warnf("tracker not started; ignoring Stop()")
		t.mu.Unlock()
		return
	}
	t.started = false
	t.mu.Unlock()
	t.log.Infof("stopping tracker")
	t.runner.Stop()
}

// AddTask registers a just-submitted job before the server lists it, giving
// the UI an immediate entry, and launches a burst loop to pick up the real
// record ahead of the next steady tick. The burst loop stops as soon as one
// listing contains the id, and gives up silently after the attempt cap.
func (t *Tracker) AddTask(taskID string) {
	if taskID == "" {
		return
	}
	now := time.Now().UnixMilli()
	t.mu.Lock()
	t.st.addTask(taskID, now)
	t.mu.Unlock()

	launched := t.runner.Burst(t.cfg.BurstWarmup, t.cfg.BurstInterval, t.cfg.BurstAttempts, func(ctx context.Context) bool {
		tasks, err := t.fetch(ctx)
		if err != nil {
			t.log.Debugf("burst poll failed: %v", err)
			return false
		}
		for _, task := range tasks {
			if task.ID == taskID {
				t.applyBurst(task)
				return true
			}
		}
		return false
	})
	if !launched {
		t.log.Debugf("tracker not started; task %s stays local until polling begins", taskID)
	}
}

// AddFiles seeds optimistic file projections (status processing) for an
// upload the client just submitted. Entries without a source url are skipped.
func (t *Tracker) AddFiles(taskID string, files ...PartialTaskFile) {
	if taskID == "" || len(files) == 0 {
		return
	}
	now := time.Now().UnixMilli()
	t.mu.Lock()
	for _, pf := range files {
		if pf.SourceURL == "" {
			continue
		}
		t.st.mergeFile(seedFile(pf, taskID, now))
	}
	t.mu.Unlock()
}

// RemoveTask drops one task from the local view. Its file projections are
// kept; they only disappear when their task completes.
func (t *Tracker) RemoveTask(taskID string) {
	t.mu.Lock()
	t.st.removeTask(taskID)
	t.mu.Unlock()
}

// RefreshTasks forces one out-of-band fetch + reconcile cycle, off the timer.
func (t *Tracker) RefreshTasks(ctx context.Context) error {
	return t.pollOnce(ctx)
}

// CancelTask asks the server to cancel a task. On acceptance it refreshes the
// local view immediately, so a cancelled task never lingers as running until
// the next tick, and emits a cancellation-confirmed event. On rejection it
// emits a failure event carrying the server's reason and returns the error.
func (t *Tracker) CancelTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return ErrEmptyTaskID
	}
	if err := t.client.CancelTask(ctx, taskID); err != nil {
		var apiErr *APIError
		reason := ""
		if errors.As(err, &apiErr) {
			reason = apiErr.Reason
		}
		t.notify.Notify(cancelFailedEvent(taskID, reason))
		return err
	}
	if err := t.RefreshTasks(ctx); err != nil {
		t.log.Warnf("refresh after cancel failed: %v", err)
	}
	t.notify.Notify(cancelConfirmedEvent(taskID))
	return nil
}

// Tasks returns a copy of the tracked task list. Embedded file maps are
// shared with the store; treat them as read-only.
func (t *Tracker) Tasks() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st.snapshotTasks()
}

// Files returns a copy of the current file projections.
func (t *Tracker) Files() []TaskFile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st.snapshotFiles()
}

// IsPolling reports whether the steady loop is armed.
func (t *Tracker) IsPolling() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// IsFetching reports whether any listing request is in flight right now.
func (t *Tracker) IsFetching() bool {
	return t.fetching.Load() > 0
}

// OnDataChanged registers fn to run after any reconciliation pass in which a
// task completed, the signal for other parts of the host to refresh their own
// reads. Callbacks run outside the store lock and may re-enter the tracker.
func (t *Tracker) OnDataChanged(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// pollOnce runs one fetch + reconcile cycle. Failures are returned for
// logging and otherwise ignored: the next cycle retries unconditionally.
func (t *Tracker) pollOnce(ctx context.Context) error {
	tasks, err := t.fetch(ctx)
	if err != nil {
		t.failures.Add(1)
		return err
	}
	t.failures.Store(0)
	t.applySnapshot(tasks)
	return nil
}

func (t *Tracker) fetch(ctx context.Context) ([]Task, error) {
	t.fetching.Add(1)
	defer t.fetching.Add(-1)
	return t.client.ListTasks(ctx)
}

// applySnapshot reconciles a fetched snapshot against the current store
// contents and applies the outcome. Events and change listeners fire after
// the lock is released so callbacks can safely re-enter the tracker.
func (t *Tracker) applySnapshot(next []Task) {
	now := time.Now().UnixMilli()
	t.mu.Lock()
	out := reconcileSnapshot(t.st.tasks, next, t.st.fileByKey, now)
	t.applyOutcome(out)
	t.st.upsertTasks(next)
	listeners := t.changed(out.completed)
	t.mu.Unlock()
	t.dispatch(out.events, listeners)
}

// applyBurst merges one burst finding exactly like a steady result for that
// task: project its files, detect the transition, then merge by id.
func (t *Tracker) applyBurst(found Task) {
	now := time.Now().UnixMilli()
	t.mu.Lock()
	out := reconcileTask(t.st.taskByID(found.ID), found, t.st.fileByKey, now)
	t.applyOutcome(out)
	t.st.mergeTask(found)
	listeners := t.changed(out.completed)
	t.mu.Unlock()
	t.dispatch(out.events, listeners)
}

// applyOutcome mutates the store per the reconciler's decisions. Merges come
// before drops so a task that just completed loses its projections even when
// the same pass projected them.
func (t *Tracker) applyOutcome(out reconcileOutcome) {
	for _, f := range out.files {
		t.st.mergeFile(f)
	}
	for _, id := range out.drop {
		t.st.dropFilesForTask(id)
	}
}

// changed flushes the listing cache and snapshots the registered listeners
// when a pass completed a task. Must be called with the lock held.
func (t *Tracker) changed(completed bool) []func() {
	if !completed {
		return nil
	}
	if t.cfg.Cache != nil {
		t.cfg.Cache.Flush()
	}
	out := make([]func(), len(t.listeners))
	copy(out, t.listeners)
	return out
}

func (t *Tracker) dispatch(events []Event, listeners []func()) {
	for _, e := range events {
		t.notify.Notify(e)
	}
	for _, fn := range listeners {
		fn()
	}
}

// runnerLogger adapts the public Logger to the internal poll logger interface.
type runnerLogger struct{ Logger }
