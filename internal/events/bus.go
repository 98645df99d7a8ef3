package events

import "sync"

// Topic names a notification channel on the bus.
type Topic string

const (
	TopicBaselineChanged   Topic = "baseline:changed"
	TopicScenarioList      Topic = "scenario:list"
	TopicScenarioActivated Topic = "scenario:activated"
	TopicScenarioUpdated   Topic = "scenario:updated"
	TopicCapacityUpdated   Topic = "capacity:updated"
	TopicFeatureUpdated    Topic = "feature:updated"
)

// Handler receives the payload published for a topic.
type Handler func(payload any)

// Bus is a process-wide publish/subscribe channel. Delivery is synchronous:
// Publish invokes every subscriber for the topic before returning, which keeps
// notifications ordered with the run-to-completion mutation model. Subscriber
// registration is guarded so composition-time wiring may happen from init
// goroutines.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[Topic]map[int]Handler
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subs: map[Topic]map[int]Handler{}}
}

// Subscribe registers a handler for a topic and returns a cancel function.
func (b *Bus) Subscribe(topic Topic, h Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = map[int]Handler{}
	}
	id := b.next
	b.next++
	b.subs[topic][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish delivers payload to every handler subscribed to topic. Handlers
// registered while a publish is in flight do not receive that publish.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()
	for _, h := range handlers {
		h(payload)
	}
}
