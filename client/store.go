// Package client holds the client half of the task tracker: the
// TaskStore capability with its remote and local-file implementations,
// the synchronization engine that keeps a cached list convergent with
// the store, and tasks.json backup/restore.
package client

import "context"

// Task is the wire representation of a task as the store returns it.
// DueDate is an RFC3339 string, empty when the task has no due date.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// UpdateFields is a partial update. Nil fields are left unchanged.
type UpdateFields struct {
	Title       *string
	Description *string
	DueDate     *string
	Completed   *bool
}

// Store is the capability every task backend implements. The engine
// and the CLI never talk to a backend except through this interface,
// so the remote and local-file variants share all sort and validation
// behavior. Errors are classified with the apperr sentinels.
type Store interface {
	// List returns all tasks, incomplete first, newest first within
	// each completion group. The order is authoritative: callers must
	// not re-sort.
	List(ctx context.Context) ([]Task, error)

	// Create persists a new task. Fails with apperr.ErrValidation when
	// title is empty.
	Create(ctx context.Context, title, description, dueDate string) (Task, error)

	// Update applies a partial update. Fails with apperr.ErrNotFound
	// when no task with id exists for the caller.
	Update(ctx context.Context, id string, fields UpdateFields) (Task, error)

	// Toggle flips completed against the stored value at call time.
	Toggle(ctx context.Context, id string) (Task, error)

	// Delete removes the task and returns the deleted record.
	Delete(ctx context.Context, id string) (Task, error)
}
