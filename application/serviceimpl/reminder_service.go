package serviceimpl

import (
	"context"
	"time"

	"todosync/domain/ports"
	"todosync/domain/repositories"
	"todosync/pkg/logger"
)

// ReminderService periodically publishes due_soon events for incomplete
// tasks whose due date falls inside the configured window. It is a pure
// producer: consumers (mail, push, bots) live outside this service.
type ReminderService struct {
	taskRepo repositories.TaskRepository
	events   ports.TaskEventPort
	window   time.Duration
}

func NewReminderService(taskRepo repositories.TaskRepository, events ports.TaskEventPort, window time.Duration) *ReminderService {
	return &ReminderService{
		taskRepo: taskRepo,
		events:   events,
		window:   window,
	}
}

// Sweep is registered as a scheduler job.
func (s *ReminderService) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, err := s.taskRepo.ListDueSoon(ctx, s.window)
	if err != nil {
		logger.ErrorContext(ctx, "Reminder sweep failed", "error", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	for _, task := range tasks {
		s.events.Publish(ctx, &ports.TaskEvent{
			Type:      ports.EventTaskDueSoon,
			TaskID:    task.ID.String(),
			OwnerID:   task.UserID,
			Title:     task.Title,
			Completed: task.Completed,
			DueDate:   task.DueDate,
			At:        time.Now(),
		})
	}

	logger.InfoContext(ctx, "Reminder sweep completed", "due_soon", len(tasks), "window", s.window.String())
}
