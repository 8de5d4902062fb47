package paperwave

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a notification event.
type EventKind string

const (
	// EventTaskCompleted fires the first time a task is observed completed.
	EventTaskCompleted EventKind = "task_completed"
	// EventTaskFailed fires the first time a task is observed failed or errored.
	EventTaskFailed EventKind = "task_failed"
	// EventCancelConfirmed fires when the server accepts a cancel request.
	EventCancelConfirmed EventKind = "cancel_confirmed"
	// EventCancelFailed fires when a cancel request is rejected.
	EventCancelFailed EventKind = "cancel_failed"
)

// Event is a one-shot, notification-worthy fact about a task. Each event
// carries a unique id so toast layers can deduplicate or track dismissal.
type Event struct {
	ID      string    `json:"id"`
	Kind    EventKind `json:"kind"`
	TaskID  string    `json:"task_id"`
	Message string    `json:"message"`
	// Reason is the raw server-side error detail, when one was reported.
	Reason string `json:"reason,omitempty"`
	At     int64  `json:"at"`
}

func newEvent(kind EventKind, taskID, message, reason string) Event {
	return Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		TaskID:  taskID,
		Message: message,
		Reason:  reason,
		At:      time.Now().UnixMilli(),
	}
}

func completedEvent(taskID string) Event {
	return newEvent(EventTaskCompleted, taskID, fmt.Sprintf("task %s completed", taskID), "")
}

func failedEvent(taskID, reason string) Event {
	msg := fmt.Sprintf("task %s failed", taskID)
	if reason != "" {
		msg = fmt.Sprintf("task %s failed: %s", taskID, reason)
	}
	return newEvent(EventTaskFailed, taskID, msg, reason)
}

func cancelConfirmedEvent(taskID string) Event {
	return newEvent(EventCancelConfirmed, taskID, fmt.Sprintf("task %s cancelled", taskID), "")
}

func cancelFailedEvent(taskID, reason string) Event {
	msg := fmt.Sprintf("could not cancel task %s", taskID)
	if reason != "" {
		msg = fmt.Sprintf("could not cancel task %s: %s", taskID, reason)
	}
	return newEvent(EventCancelFailed, taskID, msg, reason)
}

// Notifier receives notification events as they are produced. Implementations
// must be fast: they are called from the tracker's polling goroutines.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) { f(e) }

// logNotifier is the default sink: completions and cancellations at info
// level, failures at warn.
type logNotifier struct{ log Logger }

func (n logNotifier) Notify(e Event) {
	switch e.Kind {
	case EventTaskFailed, EventCancelFailed:
		n.log.Warnf("%s", e.Message)
	default:
		n.log.Infof("%s", e.Message)
	}
}

// NotifyHandler consumes one notification event.
type NotifyHandler func(Event)

// NotifyMiddleware wraps a NotifyHandler with a cross-cutting concern.
type NotifyMiddleware func(NotifyHandler) NotifyHandler

// NotifyMux routes events to handlers registered per event kind and
// implements Notifier, so it can be plugged straight into a TrackerConfig.
// Events with no registered handler are dropped. Register handlers before
// the tracker starts; NotifyMux is not safe for concurrent registration.
type NotifyMux struct {
	handlers    map[EventKind]NotifyHandler
	middlewares []NotifyMiddleware
}

// NewNotifyMux creates an empty notification mux.
func NewNotifyMux() *NotifyMux {
	return &NotifyMux{handlers: make(map[EventKind]NotifyHandler)}
}

// Handle registers a handler for one event kind, replacing any previous one.
func (m *NotifyMux) Handle(kind EventKind, fn NotifyHandler) {
	m.handlers[kind] = fn
}

// Use adds middleware(s) to the mux. Middlewares are executed in the order
// they are added.
func (m *NotifyMux) Use(mw NotifyMiddleware) {
	m.middlewares = append(m.middlewares, mw)
}

// Notify dispatches e to the handler registered for its kind.
func (m *NotifyMux) Notify(e Event) {
	h, ok := m.handlers[e.Kind]
	if !ok {
		return
	}
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		h = m.middlewares[i](h)
	}
	h(e)
}
