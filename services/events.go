package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LovationAdmin/budget-dashboard/models"
)

const (
	TopicSession = "session"
	TopicData    = "data"

	defaultEventLimit = 100
)

// Event is what dependents receive instead of a page reload.
type Event struct {
	Type  string      `json:"type"`
	Topic string      `json:"topic"`
	At    time.Time   `json:"at"`
	Data  interface{} `json:"data,omitempty"`
}

// EventPublisher fans events out to connected clients.
type EventPublisher interface {
	Publish(evt Event)
}

// EventLog keeps the most recent system events for the activity timeline.
type EventLog struct {
	mu        sync.RWMutex
	events    []models.SystemEvent
	limit     int
	publisher EventPublisher
	now       func() time.Time
}

func NewEventLog(limit int) *EventLog {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	return &EventLog{limit: limit, now: time.Now}
}

// SetPublisher makes every recorded event also go out on the data topic.
func (l *EventLog) SetPublisher(p EventPublisher) {
	l.mu.Lock()
	l.publisher = p
	l.mu.Unlock()
}

func (l *EventLog) Record(kind, title, description string) models.SystemEvent {
	evt := models.SystemEvent{
		ID:          uuid.New().String(),
		Kind:        kind,
		Title:       title,
		Description: description,
		At:          l.now(),
	}

	l.mu.Lock()
	l.events = append(l.events, evt)
	if over := len(l.events) - l.limit; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
	pub := l.publisher
	l.mu.Unlock()

	if pub != nil {
		pub.Publish(Event{Type: kind, Topic: TopicData, At: evt.At, Data: evt})
	}
	return evt
}

// List returns a copy of the retained events, oldest first.
func (l *EventLog) List() []models.SystemEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.SystemEvent, len(l.events))
	copy(out, l.events)
	return out
}
