package ports

import (
	"context"

	"todosync/domain/models"
)

// TaskCachePort caches per-owner task lists. Implementations are
// best-effort: a miss or a backend failure must never fail the request.
type TaskCachePort interface {
	GetList(ctx context.Context, ownerID string) ([]*models.Task, bool)
	SetList(ctx context.Context, ownerID string, tasks []*models.Task)
	Invalidate(ctx context.Context, ownerID string)
}
