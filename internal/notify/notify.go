// Package notify carries user-facing notifications (the toasts a UI shows
// after login, logout, cart changes) from the state stores to whoever
// listens. Delivery is best effort and never affects store correctness.
package notify

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

const Topic = "notification"

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(level Level, msg string)
}

type Nop struct{}

func (Nop) Notify(Level, string) {}

// Bus publishes notifications synchronously to every subscriber.
type Bus struct {
	bus EventBus.Bus
	now func() time.Time
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New(), now: time.Now}
}

func (b *Bus) Notify(level Level, msg string) {
	b.bus.Publish(Topic, Notification{Level: level, Message: msg, At: b.now().UTC()})
}

func (b *Bus) Subscribe(fn func(Notification)) error {
	return b.bus.Subscribe(Topic, fn)
}

// LogTo mirrors every notification into log at debug level.
func (b *Bus) LogTo(log *zap.Logger) error {
	return b.Subscribe(func(n Notification) {
		log.Debug("notification", zap.String("level", string(n.Level)), zap.String("message", n.Message))
	})
}

// Feed buffers the most recent notifications until a reader drains them.
type Feed struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

func NewFeed(max int) *Feed {
	if max <= 0 {
		max = 32
	}
	return &Feed{max: max}
}

func (f *Feed) Handle(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.max; over > 0 {
		f.items = append(f.items[:0], f.items[over:]...)
	}
}

// Drain returns buffered notifications oldest-first and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
