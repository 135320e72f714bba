package services

import (
	"context"

	"todosync/domain/models"
)

type UserService interface {
	// Provision upserts the user row for an authenticated identity.
	// It must succeed before any task operation for that identity runs.
	// Fails with apperr.ErrMissingEmail when email is empty.
	Provision(ctx context.Context, externalID, email, name string) (*models.User, error)
	GetProfile(ctx context.Context, externalID string) (*models.User, error)
}
