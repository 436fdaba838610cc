// Package notify fans notifications out to the viewer toasts and, in plain
// mode, to the output writer.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/lintlens/internal/core/notify"
	"github.com/google/uuid"
)

// Subscriber receives every published notification.
type Subscriber func(notify.Notification)

// Bus delivers notifications to its subscribers on the publishing goroutine.
// Publishing is safe from the Update loop and from report fetch goroutines.
type Bus struct {
	mu   sync.RWMutex
	subs []Subscriber
	now  func() time.Time
}

func NewBus() *Bus {
	return &Bus{now: time.Now}
}

// Subscribe adds fn. Subscribers are called in registration order.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish stamps n and hands it to each subscriber. Subscribers registered
// while a publish is running see the next notification, not this one.
func (b *Bus) Publish(n notify.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}

	b.mu.RLock()
	subs := b.subs[:len(b.subs):len(b.subs)]
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{Level: notify.LevelError, Message: fmt.Sprintf(format, args...)})
}
