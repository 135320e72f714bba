package serviceimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"todosync/domain/apperr"
	"todosync/domain/models"
	"todosync/domain/repositories"
	"todosync/domain/services"
	"todosync/pkg/logger"
)

// provisionCacheTTL bounds how often the same identity hits the users
// table. The upsert is idempotent, so a stale entry only costs one
// redundant write.
const provisionCacheTTL = 5 * time.Minute

type UserServiceImpl struct {
	userRepo repositories.UserRepository

	mu          sync.Mutex
	provisioned map[string]provisionEntry
}

type provisionEntry struct {
	email string
	name  string
	at    time.Time
}

func NewUserService(userRepo repositories.UserRepository) services.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		provisioned: make(map[string]provisionEntry),
	}
}

func (s *UserServiceImpl) Provision(ctx context.Context, externalID, email, name string) (*models.User, error) {
	if email == "" {
		logger.WarnContext(ctx, "Provisioning rejected, identity has no email", "external_id", externalID)
		return nil, apperr.ErrMissingEmail
	}
	if externalID == "" {
		return nil, fmt.Errorf("%w: external id is required", apperr.ErrValidation)
	}

	now := time.Now()
	user := &models.User{
		ID:        externalID,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s.recentlyProvisioned(externalID, email, name, now) {
		return user, nil
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to provision user", "external_id", externalID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.provisioned[externalID] = provisionEntry{email: email, name: name, at: now}
	s.mu.Unlock()

	logger.InfoContext(ctx, "User provisioned", "external_id", externalID, "email", email)
	return user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// recentlyProvisioned reports whether this exact identity was upserted
// inside the cache window. A changed email or name always re-upserts.
func (s *UserServiceImpl) recentlyProvisioned(externalID, email, name string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.provisioned[externalID]
	if !ok {
		return false
	}
	if entry.email != email || entry.name != name {
		return false
	}
	return now.Sub(entry.at) < provisionCacheTTL
}
