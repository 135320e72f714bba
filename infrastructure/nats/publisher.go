package nats

import (
	"context"
	"encoding/json"

	"todosync/domain/ports"
	"todosync/pkg/logger"
)

// Subjects are tasks.<event type>, e.g. tasks.created, tasks.due_soon.
const subjectPrefix = "tasks."

// Publisher publishes task lifecycle events. Fire-and-forget: a failed
// publish is logged and never fails the write that produced it.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) ports.TaskEventPort {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, event *ports.TaskEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to marshal task event",
			"type", event.Type, "task_id", event.TaskID, "error", err)
		return
	}

	subject := subjectPrefix + event.Type
	if err := p.client.conn.Publish(subject, data); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event",
			"subject", subject, "task_id", event.TaskID, "error", err)
		return
	}

	logger.DebugContext(ctx, "Task event published",
		"subject", subject, "task_id", event.TaskID, "owner_id", event.OwnerID)
}
