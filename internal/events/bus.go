// Package events is the in-process publish/subscribe channel that carries
// authentication signals between the API client, the OAuth handler and the
// session.
package events

import (
	"sync"
)

// Event is delivered to subscribers of its Topic.
type Event struct {
	Topic  string
	Source string
}

// Handler receives events. Handlers run synchronously on the publisher's
// goroutine and must not block.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to topic subscribers. The zero value is not usable;
// call NewBus.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers h for topic and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(topic string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish delivers e to every current subscriber of e.Topic. The subscriber
// list is copied first so handlers may subscribe, unsubscribe or publish.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[e.Topic]))
	copy(subs, b.subs[e.Topic])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(e)
	}
}

// Emit is Publish for a bare topic.
func (b *Bus) Emit(topic, source string) {
	b.Publish(Event{Topic: topic, Source: source})
}

// Subscribers reports how many handlers are registered for topic.
func (b *Bus) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
