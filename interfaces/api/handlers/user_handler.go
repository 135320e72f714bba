package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"todosync/domain/apperr"
	"todosync/domain/dto"
	"todosync/domain/services"
	"todosync/pkg/logger"
	"todosync/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe returns the provisioned user row for the caller.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	identity, err := utils.GetIdentityFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.userService.GetProfile(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		logger.ErrorContext(ctx, "Failed to load profile", "external_id", identity.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(user))
}
