package serviceimpl_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"todosync/domain/apperr"
	"todosync/domain/models"
	"todosync/domain/ports"
)

// fakeTaskRepo is an in-memory TaskRepository that replicates the
// postgres ordering contract. Error injection fields let tests force
// failures per method.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*models.Task

	CreateErr error
	ListErr   error
	UpdateErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*models.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *task
	f.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTaskRepo) GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, apperr.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Task
	for _, task := range f.tasks {
		if task.UserID == ownerID {
			clone := *task
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return apperr.ErrNotFound
	}
	clone := *task
	f.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTaskRepo) ToggleCompletion(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, apperr.ErrNotFound
	}
	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, apperr.ErrNotFound
	}
	delete(f.tasks, id)
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) ListDueSoon(ctx context.Context, window time.Duration) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	var out []*models.Task
	for _, task := range f.tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		if task.DueDate.After(now) && task.DueDate.Before(now.Add(window)) {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeUserRepo records upserts.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	upserts int

	UpsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *models.User) error {
	if f.UpsertErr != nil {
		return f.UpsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if existing, ok := f.users[user.ID]; ok {
		existing.Email = user.Email
		existing.Name = user.Name
		existing.UpdatedAt = user.UpdatedAt
		return nil
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

// recordingCache counts hits and invalidations.
type recordingCache struct {
	mu          sync.Mutex
	lists       map[string][]*models.Task
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{lists: make(map[string][]*models.Task)}
}

func (c *recordingCache) GetList(ctx context.Context, ownerID string) ([]*models.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tasks, ok := c.lists[ownerID]
	return tasks, ok
}

func (c *recordingCache) SetList(ctx context.Context, ownerID string, tasks []*models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[ownerID] = tasks
}

func (c *recordingCache) Invalidate(ctx context.Context, ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, ownerID)
	c.invalidated = append(c.invalidated, ownerID)
}

// recordingEvents captures published events.
type recordingEvents struct {
	mu     sync.Mutex
	events []*ports.TaskEvent
}

func (r *recordingEvents) Publish(ctx context.Context, event *ports.TaskEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
