package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"todosync/domain/apperr"
	"todosync/domain/services"
	"todosync/pkg/logger"
	"todosync/pkg/utils"
)

// Protected validates the bearer credential and provisions the user row
// before any task operation runs. The resolved identity ends up in
// c.Locals("identity").
func Protected(jwtSecret string, userService services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		identity, err := utils.ValidateBearerToken(token, jwtSecret)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		// No task operation may proceed without an owner row.
		if _, err := userService.Provision(c.UserContext(), identity.ID, identity.Email, identity.Name); err != nil {
			switch {
			case errors.Is(err, apperr.ErrMissingEmail):
				return utils.ErrorResponse(c, fiber.StatusUnauthorized,
					utils.ErrCodeMissingEmail, "Identity has no primary email", nil)
			default:
				logger.ErrorContext(c.UserContext(), "User provisioning failed",
					"external_id", identity.ID, "error", err)
				return utils.InternalServerErrorResponse(c)
			}
		}

		c.Locals("identity", identity)

		return c.Next()
	}
}
