package core

import (
	"sort"
	"sync"
	"time"

	"github.com/sliink/logmerge/internal/model"
)

// anyEvent is the subscription key for listeners interested in every event
const anyEvent model.EventType = "*"

// Event represents a pipeline event with metadata
type Event struct {
	Type      model.EventType
	SourceID  string
	Data      interface{}
	Timestamp time.Time
}

// NewEvent creates a new event
func NewEvent(eventType model.EventType, sourceID string, data interface{}) Event {
	return Event{
		Type:      eventType,
		SourceID:  sourceID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// EventCallback is a function that is called when an event occurs
type EventCallback func(Event)

// EventBus handles event publication and subscription. Callbacks run
// synchronously on the publishing goroutine.
type EventBus struct {
	subscribers map[model.EventType]map[string]EventCallback
	mutex       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[model.EventType]map[string]EventCallback),
	}
}

// Subscribe registers a callback for a specific event type
func (b *EventBus) Subscribe(eventType model.EventType, listenerID string, callback EventCallback) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.subscribers[eventType] == nil {
		b.subscribers[eventType] = make(map[string]EventCallback)
	}

	b.subscribers[eventType][listenerID] = callback
}

// SubscribeAll registers a callback for every event type
func (b *EventBus) SubscribeAll(listenerID string, callback EventCallback) {
	b.Subscribe(anyEvent, listenerID, callback)
}

// Unsubscribe removes a subscriber from a specific event type
func (b *EventBus) Unsubscribe(eventType model.EventType, listenerID string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.subscribers[eventType] != nil {
		delete(b.subscribers[eventType], listenerID)
	}
}

// Publish delivers an event to its subscribers, ordered by listener ID
func (b *EventBus) Publish(event Event) {
	b.mutex.RLock()
	var ids []string
	callbacks := make(map[string]EventCallback)
	for _, key := range []model.EventType{event.Type, anyEvent} {
		for id, callback := range b.subscribers[key] {
			if _, seen := callbacks[id]; !seen {
				ids = append(ids, id)
			}
			callbacks[id] = callback
		}
	}
	b.mutex.RUnlock()

	// Call the callbacks outside the lock
	sort.Strings(ids)
	for _, id := range ids {
		callbacks[id](event)
	}
}
