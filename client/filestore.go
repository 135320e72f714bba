package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"todosync/domain/apperr"
)

// FileStore implements Store on a local JSON document. It is the
// offline variant of the task store: same validation and sort rules as
// the remote one, ids assigned locally, every write flushed to disk.
type FileStore struct {
	path string

	mu    sync.Mutex
	tasks []Task
}

// OpenFileStore loads the document at path, creating an empty store
// when the file does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fs, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", apperr.ErrStore, path, err)
	}

	tasks, err := Import(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid task document %s: %w", path, err)
	}
	fs.tasks = tasks
	sortTasks(fs.tasks)

	return fs, nil
}

func (fs *FileStore) List(ctx context.Context) ([]Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	out := make([]Task, len(fs.tasks))
	copy(out, fs.tasks)
	return out, nil
}

func (fs *FileStore) Create(ctx context.Context, title, description, dueDate string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	task := Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.tasks = append(fs.tasks, task)
	sortTasks(fs.tasks)
	if err := fs.save(); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (fs *FileStore) Update(ctx context.Context, id string, fields UpdateFields) (Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i := fs.indexOf(id)
	if i < 0 {
		return Task{}, apperr.ErrNotFound
	}

	task := fs.tasks[i]
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return Task{}, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
		}
		task.Title = title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.DueDate != nil {
		task.DueDate = *fields.DueDate
	}
	if fields.Completed != nil {
		task.Completed = *fields.Completed
	}

	fs.tasks[i] = task
	sortTasks(fs.tasks)
	if err := fs.save(); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (fs *FileStore) Toggle(ctx context.Context, id string) (Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i := fs.indexOf(id)
	if i < 0 {
		return Task{}, apperr.ErrNotFound
	}

	fs.tasks[i].Completed = !fs.tasks[i].Completed
	task := fs.tasks[i]
	sortTasks(fs.tasks)
	if err := fs.save(); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (fs *FileStore) Delete(ctx context.Context, id string) (Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i := fs.indexOf(id)
	if i < 0 {
		return Task{}, apperr.ErrNotFound
	}

	task := fs.tasks[i]
	fs.tasks = append(fs.tasks[:i], fs.tasks[i+1:]...)
	if err := fs.save(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Replace swaps the whole document, used by local-only import.
func (fs *FileStore) Replace(tasks []Task) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.tasks = make([]Task, len(tasks))
	copy(fs.tasks, tasks)
	sortTasks(fs.tasks)
	return fs.save()
}

func (fs *FileStore) indexOf(id string) int {
	for i, t := range fs.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// save writes via a temp file and rename so a crash mid-write cannot
// truncate the document.
func (fs *FileStore) save() error {
	tasks := fs.tasks
	if tasks == nil {
		// A nil slice encodes as JSON null, and the document's
		// top-level value must always be an array.
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", apperr.ErrStore, err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", apperr.ErrStore, tmp, err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", apperr.ErrStore, tmp, err)
	}
	return nil
}
