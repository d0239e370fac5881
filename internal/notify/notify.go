// Package notify carries fire-and-forget "this succeeded / this failed"
// messages to the user.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Level of a notification.
type Level string

// Levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message shown to the user.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier accepts notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// Success builds a success notification.
func Success(title, message string) Notification {
	return Notification{Level: LevelSuccess, Title: title, Message: message}
}

// Error builds an error notification.
func Error(title, message string) Notification {
	return Notification{Level: LevelError, Title: title, Message: message}
}

// maxQueued bounds a Queue so that a client that never reads can't grow it.
const maxQueued = 20

// Queue buffers notifications until they are drained, e.g. by the next page
// render.
type Queue struct {
	mu      sync.Mutex
	pending []Notification
}

// Notify implements Notifier.
func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, n)
	if len(q.pending) > maxQueued {
		q.pending = q.pending[len(q.pending)-maxQueued:]
	}
}

// Drain returns and clears the queued notifications, oldest first.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Log writes notifications to a logger.
type Log struct {
	Logger *zap.Logger
}

// Notify implements Notifier.
func (l Log) Notify(n Notification) {
	if n.Level == LevelError {
		l.Logger.Warn(n.Title, zap.String("message", n.Message))
		return
	}
	l.Logger.Info(n.Title, zap.String("message", n.Message))
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(n Notification) {
	for _, x := range m {
		x.Notify(n)
	}
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) {}
