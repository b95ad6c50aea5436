package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeCreated       EventType = "created"
	EventTypeUpdated       EventType = "updated"
	EventTypeDeleted       EventType = "deleted"
	EventTypeCheckedIn     EventType = "checked_in"
	EventTypeCheckedOut    EventType = "checked_out"
	EventTypeClassified    EventType = "classified"
	EventTypeStatusChanged EventType = "status_changed"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeSession  EntityType = "session"
	EntityTypeTipPool  EntityType = "tip_pool"
	EntityTypeSchedule EntityType = "schedule"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "session.checked_in"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "session"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SessionCheckedIn creates a session.checked_in event
func SessionCheckedIn(payload interface{}) Event {
	return NewEvent(EventTypeCheckedIn, EntityTypeSession, payload)
}

// SessionCheckedOut creates a session.checked_out event
func SessionCheckedOut(payload interface{}) Event {
	return NewEvent(EventTypeCheckedOut, EntityTypeSession, payload)
}

// SessionClassified creates a session.classified event
func SessionClassified(payload interface{}) Event {
	return NewEvent(EventTypeClassified, EntityTypeSession, payload)
}

// TipPoolCreated creates a tip_pool.created event
func TipPoolCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTipPool, payload)
}

// ScheduleCreated creates a schedule.created event
func ScheduleCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeSchedule, payload)
}

// ScheduleUpdated creates a schedule.updated event
func ScheduleUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSchedule, payload)
}

// ScheduleDeleted creates a schedule.deleted event
func ScheduleDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeSchedule, payload)
}

// ScheduleStatusChanged creates a schedule.status_changed event
func ScheduleStatusChanged(payload interface{}) Event {
	return NewEvent(EventTypeStatusChanged, EntityTypeSchedule, payload)
}
