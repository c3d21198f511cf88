package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is an outbox row recorded in the same transaction as the mutation
// it describes, then published to the broker best-effort.
type Event struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Event      string          `gorm:"not null" json:"event"`
	Version    int             `gorm:"not null" json:"version"`
	Entity     string          `gorm:"not null" json:"entity"`
	ActorID    string          `gorm:"not null" json:"actor_id"`
	Timestamp  time.Time       `gorm:"not null" json:"timestamp"`
	Data       json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	Dispatched bool            `gorm:"not null;default:false" json:"dispatched"`
}

func NewEvent(event, entity, actorID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    entity,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}
