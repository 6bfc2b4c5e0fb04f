package services

import (
	"sync"
	"time"

	"github.com/papillonstore/papillon-api/models"
)

const (
	EventOrderCreated  = "order_created"
	EventStatusChanged = "status_changed"
)

// Event is what the lifecycle publishes to the notification layer. Consumers
// deduplicate by (OrderID, To, At); delivery is at-least-once and a slow
// consumer loses events rather than blocking an order operation.
type Event struct {
	Kind        string             `json:"kind"`
	OrderID     string             `json:"order_id"`
	OrderNumber int64              `json:"order_number,omitempty"`
	Customer    string             `json:"customer,omitempty"`
	From        models.OrderStatus `json:"from,omitempty"`
	To          models.OrderStatus `json:"to,omitempty"`
	At          time.Time          `json:"at"`
}

// Feed is a small in-process fanout. The websocket hub is its main consumer.
type Feed struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a consumer. The returned cancel must be called when the
// consumer goes away, or its channel leaks.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish fans the event out without blocking: a subscriber with a full
// buffer is skipped.
func (f *Feed) Publish(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
