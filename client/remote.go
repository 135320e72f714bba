package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todosync/domain/apperr"
)

// TokenSource produces a short-lived bearer credential for each
// request. Supplied by the auth collaborator.
type TokenSource func(ctx context.Context) (string, error)

// Remote implements Store against the todosync HTTP API.
type Remote struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewRemote creates a remote store client. baseURL points at the API
// root, e.g. http://localhost:8080.
func NewRemote(baseURL string, tokens TokenSource) *Remote {
	return NewRemoteWithHTTPClient(baseURL, tokens, &http.Client{Timeout: 15 * time.Second})
}

// NewRemoteWithHTTPClient creates a remote store with a custom HTTP
// client (for testing).
func NewRemoteWithHTTPClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

type updatePayload struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (r *Remote) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := r.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *Remote) Create(ctx context.Context, title, description, dueDate string) (Task, error) {
	var task Task
	body := createPayload{Title: title, Description: description, DueDate: dueDate}
	if err := r.do(ctx, http.MethodPost, "/api/v1/tasks", body, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (r *Remote) Update(ctx context.Context, id string, fields UpdateFields) (Task, error) {
	var task Task
	body := updatePayload{
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Completed:   fields.Completed,
	}
	if err := r.do(ctx, http.MethodPut, "/api/v1/tasks/"+id, body, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (r *Remote) Toggle(ctx context.Context, id string) (Task, error) {
	var task Task
	if err := r.do(ctx, http.MethodPatch, "/api/v1/tasks/"+id+"/toggle", nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (r *Remote) Delete(ctx context.Context, id string) (Task, error) {
	var task Task
	if err := r.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// do sends one request and decodes the response envelope into out.
func (r *Remote) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", apperr.ErrStore, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperr.ErrStore, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := r.tokens(ctx)
	if err != nil {
		return fmt.Errorf("%w: credential: %v", apperr.ErrUnauthorized, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode response: %v", apperr.ErrStore, err)
	}

	if !env.Success {
		return statusError(resp.StatusCode, env.Error)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode payload: %v", apperr.ErrStore, err)
		}
	}
	return nil
}

func statusError(status int, info *envelopeError) error {
	message := ""
	if info != nil {
		message = info.Message
	}

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, message)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", apperr.ErrUnauthorized, message)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", apperr.ErrValidation, message)
	default:
		return fmt.Errorf("%w: status %d: %s", apperr.ErrStore, status, message)
	}
}
