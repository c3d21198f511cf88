package broker

import (
	"encoding/json"
	"time"
)

// StandardMessage is the wire format for every published event.
type StandardMessage struct {
	Event     string                 `json:"event"`
	Entity    string                 `json:"entity"`
	ActorID   string                 `json:"actor_id"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

// NewStandardMessage builds a message for an event type and payload.
func NewStandardMessage(event EventType, entity, actorID string, payload map[string]interface{}) StandardMessage {
	return StandardMessage{
		Event:     string(event),
		Entity:    entity,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// Marshal serializes the message for publishing.
func (m StandardMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
