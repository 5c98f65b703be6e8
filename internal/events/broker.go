package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Broker fans events out to in-process subscribers.
//
// Publishing never blocks. A subscriber whose buffer is full misses the event.
type Broker struct {
	mu          sync.RWMutex
	buffer      int
	subscribers map[chan Event]struct{}
	closed      bool
}

func NewBroker(buffer int) *Broker {
	if buffer < 1 {
		buffer = 1
	}

	return &Broker{
		buffer:      buffer,
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel receiving all future events and a function
// that ends the subscription and closes the channel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if _, ok := b.subscribers[ch]; ok {
				delete(b.subscribers, ch)
				close(ch)
			}
		})
	}
}

func (b *Broker) Publish(_ context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			log.Debug().Str("run", e.RunID.String()).Str("stage", e.Stage).Msg("subscriber is too slow, dropping event")
		}
	}

	return nil
}

// Len is the number of active subscriptions.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close ends all subscriptions.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = map[chan Event]struct{}{}
	b.closed = true
}
