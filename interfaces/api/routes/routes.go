package routes

import (
	"github.com/gofiber/fiber/v2"

	"todosync/domain/services"
	"todosync/interfaces/api/handlers"
	"todosync/interfaces/api/middleware"
)

// Deps carries what route registration needs beyond the handlers.
type Deps struct {
	JWTSecret   string
	UserService services.UserService
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, deps Deps) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	protected := middleware.Protected(deps.JWTSecret, deps.UserService)

	SetupTaskRoutes(api, h, protected)
	SetupUserRoutes(api, h, protected)
}
