package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBuffer = 64

// Broker fans published events out to every subscriber. A subscription
// lives until its context is cancelled or the broker is closed,
// whichever happens first.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Event[T]
	nextID uint64
	buffer int
	done   chan struct{}
}

// NewBroker returns a broker whose subscriber channels buffer 64 events.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBuffer)
}

// NewBrokerWithBuffer returns a broker whose subscriber channels buffer
// size events before Publish starts dropping.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[uint64]chan Event[T]),
		buffer: size,
		done:   make(chan struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel.
// The channel closes when ctx is cancelled or the broker shuts down.
// Subscribing to a closed broker yields an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	ch := make(chan Event[T], b.buffer)
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	go b.reap(ctx, id)

	return ch
}

// reap removes subscriber id once its context ends. Close handles the
// channel when the whole broker shuts down first.
func (b *Broker[T]) reap(ctx context.Context, id uint64) {
	select {
	case <-ctx.Done():
	case <-b.done:
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		return
	}
	ch, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(ch)
}

// Publish delivers an event to every subscriber that has buffer space.
// Slow subscribers lose events rather than stalling the publisher.
func (b *Broker[T]) Publish(kind EventType, payload T) {
	ev := Event[T]{
		Type:      kind,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.isClosed() {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts the broker down and closes every subscriber channel.
// Further calls are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		return
	}
	close(b.done)
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// SubscriberCount reports how many subscriptions are live.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker[T]) isClosed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
