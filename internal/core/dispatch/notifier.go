package dispatch

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Notification carries the terminal result of a dispatch run to in-process
// subscribers, typically the streaming HTTP endpoint held open by the
// party that placed the task.
type Notification struct {
	TaskID     kernel.UUID
	Outcome    Outcome
	AssigneeID *kernel.UUID
	OccurredAt time.Time
}

// Notifier fans a task's terminal notification out to every subscriber
// waiting on that task. A dispatch run finishes exactly once, so each
// subscriber receives at most one notification and its channel is closed
// right after delivery.
type Notifier struct {
	mu   sync.Mutex
	subs map[kernel.UUID][]chan Notification
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[kernel.UUID][]chan Notification),
	}
}

// Subscribe registers interest in the terminal notification of the given
// task. The returned channel delivers at most one Notification and is then
// closed. The returned function abandons the subscription early; calling
// it after delivery is a no-op.
func (n *Notifier) Subscribe(taskID kernel.UUID) (<-chan Notification, func()) {
	ch := make(chan Notification, 1)

	n.mu.Lock()
	n.subs[taskID] = append(n.subs[taskID], ch)
	n.mu.Unlock()

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		channels := n.subs[taskID]
		for i, c := range channels {
			if c == ch {
				n.subs[taskID] = append(channels[:i], channels[i+1:]...)
				close(c)
				break
			}
		}
		if len(n.subs[taskID]) == 0 {
			delete(n.subs, taskID)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the notification to every subscriber of its task and
// drops the subscriptions. Publishing with no subscribers is a no-op.
func (n *Notifier) Publish(notification Notification) {
	n.mu.Lock()
	channels := n.subs[notification.TaskID]
	delete(n.subs, notification.TaskID)
	n.mu.Unlock()

	for _, ch := range channels {
		ch <- notification
		close(ch)
	}
}
