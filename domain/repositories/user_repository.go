package repositories

import (
	"context"

	"todosync/domain/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Upsert inserts the user or, if the external id already exists,
	// refreshes email and name. CreatedAt is only written on insert.
	Upsert(ctx context.Context, user *models.User) error
}
