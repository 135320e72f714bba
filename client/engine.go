package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"todosync/domain/apperr"
)

// State is the engine's position in its idle → loading → {ready, error}
// cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ImportMode selects what a local import does with the current list.
type ImportMode int

const (
	// ImportReplace swaps the cached list for the imported one.
	ImportReplace ImportMode = iota
	// ImportMerge appends imported records whose id is not already
	// cached.
	ImportMerge
)

// Engine keeps a locally cached task list convergent with a Store.
// Every mutation goes through the store and is followed by a full list
// refresh, so the cache never holds state the store has not confirmed.
// One Engine serves one authenticated session; it is not a singleton.
//
// The mutex is held across the store round trip: a second mutation
// issued while one is in flight queues behind it rather than racing.
// On any failure the previously cached list is left untouched.
type Engine struct {
	store Store

	mu            sync.Mutex
	state         State
	tasks         []Task
	lastErr       error
	importedLocal bool
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		state: StateIdle,
	}
}

// Load performs the initial fetch.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refresh(ctx)
}

// Tasks returns a copy of the cached list in store order.
func (e *Engine) Tasks() []Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the error from the last failed operation, nil after a
// successful one.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// ImportedLocalOnly reports whether the cached list contains records
// from a local import that were never synchronized to the store. A UI
// should flag this when the store is the system of record.
func (e *Engine) ImportedLocalOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.importedLocal
}

// Create adds a task. A title that is blank after trimming is rejected
// locally: no store call is made and the cached list is unchanged.
func (e *Engine) Create(ctx context.Context, title, description, dueDate string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mutate(ctx, func() error {
		_, err := e.store.Create(ctx, title, description, dueDate)
		return err
	})
}

// Update edits a task. When fields.Completed is nil the task's current
// completed value is supplied from the cache, so an edit never silently
// flips completion.
func (e *Engine) Update(ctx context.Context, id string, fields UpdateFields) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fields.Completed == nil {
		if cached, ok := e.cachedTask(id); ok {
			completed := cached.Completed
			fields.Completed = &completed
		}
	}

	return e.mutate(ctx, func() error {
		_, err := e.store.Update(ctx, id, fields)
		return err
	})
}

// Toggle flips completion through the store. The new value is never
// computed locally, so concurrent toggles from another session cannot
// be overwritten with a stale flip.
func (e *Engine) Toggle(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mutate(ctx, func() error {
		_, err := e.store.Toggle(ctx, id)
		return err
	})
}

func (e *Engine) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mutate(ctx, func() error {
		_, err := e.store.Delete(ctx, id)
		return err
	})
}

// ExportTo writes the current cached list, exactly what the UI shows
// rather than a re-fetch, as a tasks.json document.
func (e *Engine) ExportTo(w io.Writer) error {
	e.mu.Lock()
	tasks := make([]Task, len(e.tasks))
	copy(tasks, e.tasks)
	e.mu.Unlock()

	return Export(w, tasks)
}

// ImportFrom replaces or extends the cached list from a backup
// document. This is a local-only convenience: the result is NOT
// synchronized to the store, and ImportedLocalOnly reports true until
// the next successful refresh.
func (e *Engine) ImportFrom(r io.Reader, mode ImportMode) error {
	imported, err := Import(r)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch mode {
	case ImportReplace:
		e.tasks = imported
	case ImportMerge:
		seen := make(map[string]bool, len(e.tasks))
		for _, t := range e.tasks {
			seen[t.ID] = true
		}
		for _, t := range imported {
			if !seen[t.ID] {
				e.tasks = append(e.tasks, t)
			}
		}
	default:
		return fmt.Errorf("%w: unknown import mode %d", apperr.ErrValidation, mode)
	}

	e.importedLocal = true
	e.state = StateReady
	e.lastErr = nil
	return nil
}

// mutate runs one loading→ready cycle: the store call, then the
// convergent refresh. Callers hold e.mu.
func (e *Engine) mutate(ctx context.Context, op func() error) error {
	e.state = StateLoading

	if err := op(); err != nil {
		e.state = StateError
		e.lastErr = err
		return err
	}

	return e.refresh(ctx)
}

// refresh replaces the cache with the store's authoritative list.
// Callers hold e.mu.
func (e *Engine) refresh(ctx context.Context) error {
	e.state = StateLoading

	tasks, err := e.store.List(ctx)
	if err != nil {
		e.state = StateError
		e.lastErr = err
		return err
	}

	e.tasks = tasks
	e.state = StateReady
	e.lastErr = nil
	e.importedLocal = false
	return nil
}

func (e *Engine) cachedTask(id string) (Task, bool) {
	for _, t := range e.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
