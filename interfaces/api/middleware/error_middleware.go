package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"todosync/pkg/logger"
	"todosync/pkg/utils"
)

// ErrorHandler catches errors that escape the handlers and renders the
// standard envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			}
		}

		logger.ErrorContext(c.UserContext(), "Unhandled request error", "error", err, "status", code)

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
