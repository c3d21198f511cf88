package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	UserRegistered EventType = "user.registered"
)

const (
	// TaskSubject matches every task event.
	TaskSubject = "task.*"
	// UserSubject matches every user event.
	UserSubject = "user.*"
)
