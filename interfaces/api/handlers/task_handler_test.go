package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"todosync/domain/apperr"
	"todosync/domain/dto"
	"todosync/domain/models"
	"todosync/domain/services"
	"todosync/interfaces/api/handlers"
	"todosync/pkg/utils"
)

// stubTaskService is an in-memory services.TaskService good enough to
// exercise the HTTP layer: owner scoping, blank-title rejection and
// the list ordering contract.
type stubTaskService struct {
	tasks map[uuid.UUID]*models.Task
}

func newStubTaskService() *stubTaskService {
	return &stubTaskService{tasks: make(map[uuid.UUID]*models.Task)}
}

func (s *stubTaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range s.tasks {
		if task.UserID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *stubTaskService) Create(ctx context.Context, ownerID string, req *dto.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	task := &models.Task{
		ID:        uuid.New(),
		Title:     title,
		UserID:    ownerID,
		CreatedAt: time.Now(),
	}
	task.Description = req.Description
	task.DueDate = req.DueDate
	s.tasks[task.ID] = task
	return task, nil
}

func (s *stubTaskService) Update(ctx context.Context, ownerID string, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.owned(taskID, ownerID)
	if err != nil {
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
	return task, nil
}

func (s *stubTaskService) ToggleCompletion(ctx context.Context, ownerID string, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.owned(taskID, ownerID)
	if err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	return task, nil
}

func (s *stubTaskService) Delete(ctx context.Context, ownerID string, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.owned(taskID, ownerID)
	if err != nil {
		return nil, err
	}
	delete(s.tasks, taskID)
	return task, nil
}

func (s *stubTaskService) owned(taskID uuid.UUID, ownerID string) (*models.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, apperr.ErrNotFound
	}
	return task, nil
}

var _ services.TaskService = (*stubTaskService)(nil)

// newTestApp wires the task handler behind a middleware that injects
// the given identity, standing in for the real auth chain.
func newTestApp(svc services.TaskService, identity *utils.Identity) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		if identity != nil {
			c.Locals("identity", identity)
		}
		return c.Next()
	})

	h := handlers.NewTaskHandler(svc)
	tasks := app.Group("/api/v1/tasks")
	tasks.Get("/", h.ListTasks)
	tasks.Post("/", h.CreateTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Patch("/:id/toggle", h.ToggleTask)
	tasks.Delete("/:id", h.DeleteTask)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, utils.Response) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var env utils.Response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func alice() *utils.Identity {
	return &utils.Identity{ID: "user_alice", Email: "alice@example.com", Name: "Alice"}
}

func TestTaskRoutesRequireIdentity(t *testing.T) {
	app := newTestApp(newStubTaskService(), nil)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/tasks/", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
	if env.Success || env.Error == nil || env.Error.Code != utils.ErrCodeUnauthorized {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestCreateTaskEndpoint(t *testing.T) {
	app := newTestApp(newStubTaskService(), alice())

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tasks/", map[string]any{
		"title":       "write tests",
		"description": "handler layer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}

	data, _ := json.Marshal(env.Data)
	var task dto.TaskResponse
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("decode task payload: %v", err)
	}
	if task.Title != "write tests" || task.Completed {
		t.Errorf("unexpected task payload: %+v", task)
	}
	if task.ID == uuid.Nil {
		t.Error("expected server-assigned id in payload")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	app := newTestApp(newStubTaskService(), alice())

	// Missing title is caught by struct validation.
	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tasks/", map[string]any{
		"description": "no title",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing title: expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != utils.ErrCodeValidation {
		t.Errorf("missing title: unexpected envelope %+v", env)
	}

	// Whitespace-only title passes struct validation and is rejected
	// by the service.
	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/tasks/", map[string]any{
		"title": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank title: expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != utils.ErrCodeValidation {
		t.Errorf("blank title: unexpected envelope %+v", env)
	}
}

func TestUpdateTaskNotFoundCases(t *testing.T) {
	svc := newStubTaskService()
	app := newTestApp(svc, alice())

	// Unparseable id.
	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/tasks/not-a-uuid", map[string]any{
		"title": "renamed",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("non-uuid id: expected 404, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != utils.ErrCodeNotFound {
		t.Errorf("non-uuid id: unexpected envelope %+v", env)
	}

	// Valid uuid that names nothing.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/tasks/"+uuid.NewString(), map[string]any{
		"title": "renamed",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", resp.StatusCode)
	}
}

func TestOwnershipHiddenBehindNotFound(t *testing.T) {
	svc := newStubTaskService()
	task, err := svc.Create(context.Background(), "user_bob", &dto.CreateTaskRequest{Title: "bob's task"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := newTestApp(svc, alice())

	for _, probe := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/api/v1/tasks/" + task.ID.String(), map[string]any{"title": "mine now"}},
		{http.MethodPatch, "/api/v1/tasks/" + task.ID.String() + "/toggle", nil},
		{http.MethodDelete, "/api/v1/tasks/" + task.ID.String(), nil},
	} {
		resp, env := doJSON(t, app, probe.method, probe.path, probe.body)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s %s: expected 404 for another owner's task, got %d", probe.method, probe.path, resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != utils.ErrCodeNotFound {
			t.Errorf("%s %s: unexpected envelope %+v", probe.method, probe.path, env)
		}
	}

	// Bob's task is untouched.
	kept, err := svc.List(context.Background(), "user_bob")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(kept) != 1 || kept[0].Title != "bob's task" || kept[0].Completed {
		t.Errorf("probe requests modified the task: %+v", kept)
	}
}

func TestToggleTaskEndpoint(t *testing.T) {
	svc := newStubTaskService()
	task, err := svc.Create(context.Background(), "user_alice", &dto.CreateTaskRequest{Title: "flip"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := newTestApp(svc, alice())

	resp, env := doJSON(t, app, http.MethodPatch, "/api/v1/tasks/"+task.ID.String()+"/toggle", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data, _ := json.Marshal(env.Data)
	var payload dto.TaskResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !payload.Completed {
		t.Error("toggle response should carry the new completed value")
	}
}

func TestDeleteTaskEndpointReturnsRecord(t *testing.T) {
	svc := newStubTaskService()
	task, err := svc.Create(context.Background(), "user_alice", &dto.CreateTaskRequest{Title: "doomed"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := newTestApp(svc, alice())

	resp, env := doJSON(t, app, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data, _ := json.Marshal(env.Data)
	var payload dto.TaskResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.ID != task.ID || payload.Title != "doomed" {
		t.Errorf("expected the deleted record in the payload, got %+v", payload)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", resp.StatusCode)
	}
}
