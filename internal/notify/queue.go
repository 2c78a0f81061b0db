// Package notify implements the non-blocking notification queue backing
// user-visible toasts: errors and successes accumulate here and expire
// after a visible duration instead of blocking the flow that raised them.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// Level tags a notification for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one queued, auto-dismissing message.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Queue accumulates notifications and drops them once their visible
// duration has passed or they are dismissed explicitly.
type Queue struct {
	mu    sync.Mutex
	ttl   time.Duration
	items []Notification
	now   func() time.Time
}

// NewQueue creates a queue with the default 5 second visible duration.
func NewQueue() *Queue {
	return &Queue{ttl: DefaultTTL, now: time.Now}
}

// Push queues a notification.
func (q *Queue) Push(level Level, message string) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: q.now(),
	}
	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()
	return n
}

// Success queues a success notification.
func (q *Queue) Success(message string) Notification {
	return q.Push(LevelSuccess, message)
}

// Error queues an error notification.
func (q *Queue) Error(message string) Notification {
	return q.Push(LevelError, message)
}

// Active returns the notifications still visible at the given time and
// drops the expired ones.
func (q *Queue) Active(now time.Time) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, n := range q.items {
		if now.Sub(n.CreatedAt) < q.ttl {
			kept = append(kept, n)
		}
	}
	q.items = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes a notification before its duration elapses.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}
