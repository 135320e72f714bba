package services

import (
	"context"

	"github.com/google/uuid"

	"todosync/domain/dto"
	"todosync/domain/models"
)

type TaskService interface {
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Create(ctx context.Context, ownerID string, req *dto.CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, ownerID string, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	ToggleCompletion(ctx context.Context, ownerID string, taskID uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, ownerID string, taskID uuid.UUID) (*models.Task, error)
}
