package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"todosync/domain/apperr"
	"todosync/domain/dto"
	"todosync/domain/models"
	"todosync/domain/ports"
	"todosync/domain/repositories"
	"todosync/domain/services"
	"todosync/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	cache    ports.TaskCachePort // optional
	events   ports.TaskEventPort // optional
}

// NewTaskService builds the task service. cache and events may be nil;
// both are best-effort side channels.
func NewTaskService(taskRepo repositories.TaskRepository, cache ports.TaskCachePort, events ports.TaskEventPort) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		cache:    cache,
		events:   events,
	}
}

func (s *TaskServiceImpl) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	if s.cache != nil {
		if tasks, ok := s.cache.GetList(ctx, ownerID); ok {
			return tasks, nil
		}
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "owner_id", ownerID, "error", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, ownerID, tasks)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) Create(ctx context.Context, ownerID string, req *dto.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		logger.WarnContext(ctx, "Task creation rejected, empty title", "owner_id", ownerID)
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   false,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "owner_id", ownerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "owner_id", ownerID)
	s.afterWrite(ctx, ports.EventTaskCreated, task)

	return task, nil
}

func (s *TaskServiceImpl) Update(ctx context.Context, ownerID string, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for update", "task_id", taskID, "owner_id", ownerID)
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "owner_id", ownerID)
	s.afterWrite(ctx, ports.EventTaskUpdated, task)

	return task, nil
}

func (s *TaskServiceImpl) ToggleCompletion(ctx context.Context, ownerID string, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.ToggleCompletion(ctx, taskID, ownerID)
	if err != nil {
		logger.WarnContext(ctx, "Task toggle failed", "task_id", taskID, "owner_id", ownerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task completion toggled",
		"task_id", taskID, "owner_id", ownerID, "completed", task.Completed)
	s.afterWrite(ctx, ports.EventTaskToggled, task)

	return task, nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, ownerID string, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.Delete(ctx, taskID, ownerID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for deletion", "task_id", taskID, "owner_id", ownerID)
		return nil, err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "owner_id", ownerID)
	s.afterWrite(ctx, ports.EventTaskDeleted, task)

	return task, nil
}

// afterWrite runs the best-effort side channels after a durable write:
// the owner's cached list is stale and downstream consumers get an event.
func (s *TaskServiceImpl) afterWrite(ctx context.Context, eventType string, task *models.Task) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, task.UserID)
	}
	if s.events != nil {
		s.events.Publish(ctx, &ports.TaskEvent{
			Type:      eventType,
			TaskID:    task.ID.String(),
			OwnerID:   task.UserID,
			Title:     task.Title,
			Completed: task.Completed,
			DueDate:   task.DueDate,
			At:        time.Now(),
		})
	}
}
