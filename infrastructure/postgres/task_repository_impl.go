package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todosync/domain/apperr"
	"todosync/domain/models"
	"todosync/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return nil
}

func (r *TaskRepositoryImpl) GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("completed ASC, created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Select("Title", "Description", "DueDate", "Completed", "UpdatedAt").
		Updates(task)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ToggleCompletion flips completed against the stored value in a single
// owner-scoped UPDATE, so two concurrent toggles from different
// sessions both land (flip twice) instead of racing on a stale read.
func (r *TaskRepositoryImpl) ToggleCompletion(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"completed":  gorm.Expr("NOT completed"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	return r.GetByIDAndOwner(ctx, id, ownerID)
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error) {
	task, err := r.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Task{})
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}
	return task, nil
}

func (r *TaskRepositoryImpl) ListDueSoon(ctx context.Context, window time.Duration) ([]*models.Task, error) {
	now := time.Now()
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("completed = ? AND due_date IS NOT NULL AND due_date BETWEEN ? AND ?", false, now, now.Add(window)).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return tasks, nil
}
