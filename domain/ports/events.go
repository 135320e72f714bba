package ports

import (
	"context"
	"time"
)

// Task lifecycle event types.
const (
	EventTaskCreated = "created"
	EventTaskUpdated = "updated"
	EventTaskToggled = "toggled"
	EventTaskDeleted = "deleted"
	EventTaskDueSoon = "due_soon"
)

type TaskEvent struct {
	Type      string     `json:"type"`
	TaskID    string     `json:"taskId"`
	OwnerID   string     `json:"ownerId"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	At        time.Time  `json:"at"`
}

// TaskEventPort publishes task lifecycle events. Delivery is
// best-effort; failures are logged by the implementation and never
// propagate to the write path.
type TaskEventPort interface {
	Publish(ctx context.Context, event *TaskEvent)
}
