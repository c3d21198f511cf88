package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency level of a task. Only the three enumerated
// values are accepted; anything else is rejected at the service boundary.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority validates a raw priority string against the enumeration.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `gorm:"type:varchar(10);not null" json:"priority"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	DueDate     int64      `gorm:"not null" json:"due_date"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	LastUpdate  time.Time  `gorm:"not null" json:"last_update"`
}

// TaskUpdate is a partial update to a task. A nil field means "leave
// unchanged"; a non-nil field means "set to this value", so "absent" and
// "set" stay observably distinct in update requests.
type TaskUpdate struct {
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *int64     `json:"due_date"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	IsCompleted *bool      `json:"is_completed"`
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Description == nil && u.Priority == nil && u.DueDate == nil &&
		u.AssigneeID == nil && u.IsCompleted == nil
}
