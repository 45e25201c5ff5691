package core

// Event kinds emitted by the TaskStore, one per mutating operation.
// EventTaskCompleted accompanies EventTaskStatusChanged when a task
// enters done.
const (
	EventTaskCreated       = "task.created"
	EventTaskUpdated       = "task.updated"
	EventTaskStatusChanged = "task.status_changed"
	EventTaskCompleted     = "task.completed"
	EventTaskRemoved       = "task.removed"
)

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}
