package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"todosync/domain/apperr"
	"todosync/domain/dto"
	"todosync/domain/services"
	"todosync/pkg/logger"
	"todosync/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task owned by the caller, incomplete first,
// newest first within each group. No pagination: the result is the
// authoritative list the client engine replaces its cache with.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, err := utils.GetIdentityFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.List(ctx, identity.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "owner_id", identity.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, err := utils.GetIdentityFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	task, err := h.taskService.Create(ctx, identity.ID, &req)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return utils.ValidationErrorResponse(c, err.Error())
		}
		logger.ErrorContext(ctx, "Task creation failed", "owner_id", identity.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, err := utils.GetIdentityFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// An unparseable id can never name a task the caller owns.
		return utils.NotFoundResponse(c, "Task not found")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	task, err := h.taskService.Update(ctx, identity.ID, taskID, &req)
	if err != nil {
		return h.writeTaskError(c, err, taskID.String())
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, err := utils.GetIdentityFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFoundResponse(c, "Task not found")
	}

	task, err := h.taskService.ToggleCompletion(ctx, identity.ID, taskID)
	if err != nil {
		return h.writeTaskError(c, err, taskID.String())
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, err := utils.GetIdentityFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFoundResponse(c, "Task not found")
	}

	task, err := h.taskService.Delete(ctx, identity.ID, taskID)
	if err != nil {
		return h.writeTaskError(c, err, taskID.String())
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

// writeTaskError maps service errors onto the envelope. Not-owned and
// nonexistent are the same NotFound on purpose.
func (h *TaskHandler) writeTaskError(c *fiber.Ctx, err error, taskID string) error {
	ctx := c.UserContext()
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return utils.NotFoundResponse(c, "Task not found")
	case errors.Is(err, apperr.ErrValidation):
		return utils.ValidationErrorResponse(c, err.Error())
	default:
		logger.ErrorContext(ctx, "Task operation failed", "task_id", taskID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}
