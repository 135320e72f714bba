package redis

import (
	"context"
	"encoding/json"
	"time"

	"todosync/domain/models"
	"todosync/domain/ports"
	"todosync/pkg/logger"
)

const listKeyPrefix = "tasks:list:"

// TaskCache is a read-through cache for per-owner task lists,
// invalidated on every write. Any Redis failure degrades to a miss.
type TaskCache struct {
	client *Client
	ttl    time.Duration
}

func NewTaskCache(client *Client, ttl time.Duration) ports.TaskCachePort {
	return &TaskCache{client: client, ttl: ttl}
}

func (c *TaskCache) GetList(ctx context.Context, ownerID string) ([]*models.Task, bool) {
	raw, err := c.client.Get(ctx, listKeyPrefix+ownerID)
	if err != nil {
		if !IsNil(err) {
			logger.WarnContext(ctx, "Task cache read failed", "owner_id", ownerID, "error", err)
		}
		return nil, false
	}

	var tasks []*models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		logger.WarnContext(ctx, "Task cache entry corrupt, dropping", "owner_id", ownerID, "error", err)
		c.Invalidate(ctx, ownerID)
		return nil, false
	}
	return tasks, true
}

func (c *TaskCache) SetList(ctx context.Context, ownerID string, tasks []*models.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		logger.WarnContext(ctx, "Task cache marshal failed", "owner_id", ownerID, "error", err)
		return
	}
	if err := c.client.Set(ctx, listKeyPrefix+ownerID, data, c.ttl); err != nil {
		logger.WarnContext(ctx, "Task cache write failed", "owner_id", ownerID, "error", err)
	}
}

func (c *TaskCache) Invalidate(ctx context.Context, ownerID string) {
	if err := c.client.Del(ctx, listKeyPrefix+ownerID); err != nil {
		logger.WarnContext(ctx, "Task cache invalidation failed", "owner_id", ownerID, "error", err)
	}
}
