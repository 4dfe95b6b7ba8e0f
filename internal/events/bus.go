package events

import (
	"sync"
	"time"
)

// Type names an in-process notification.
type Type string

const (
	CartUpdated     Type = "cartUpdated"
	WishlistUpdated Type = "wishlistUpdated"
)

// Event carries the new counter value for one session.
type Event struct {
	Type       Type
	SessionID  string
	Count      int
	OccurredAt time.Time
}

type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
	types   map[Type]struct{}
}

// Bus delivers events synchronously, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for the given types (all types when none are given)
// and returns a function that removes the subscription.
func (b *Bus) Subscribe(h Handler, types ...Type) func() {
	s := subscription{handler: h}
	if len(types) > 0 {
		s.types = make(map[Type]struct{}, len(types))
		for _, t := range types {
			s.types[t] = struct{}{}
		}
	}

	b.mu.Lock()
	b.nextID++
	s.id = b.nextID
	b.subs = append(b.subs, s)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(s.id) })
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if s.types != nil {
			if _, ok := s.types[e.Type]; !ok {
				continue
			}
		}
		s.handler(e)
	}
}
