package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todosync/domain/models"
)

// TaskRepository persists task rows. Every lookup that takes an ownerID
// combines existence and ownership into one query, so a caller cannot
// tell "not mine" from "does not exist".
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error)
	// ListByOwner returns the owner's tasks incomplete-first, newest
	// first within each completion group.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// ToggleCompletion flips completed against the stored value in a
	// single owner-scoped statement and returns the row after the flip.
	ToggleCompletion(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error)
	// Delete removes the row and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error)
	// ListDueSoon returns incomplete tasks across all owners with a due
	// date inside [now, now+window]. Used by the reminder sweep.
	ListDueSoon(ctx context.Context, window time.Duration) ([]*models.Task, error)
}
