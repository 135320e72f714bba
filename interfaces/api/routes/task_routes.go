package routes

import (
	"github.com/gofiber/fiber/v2"

	"todosync/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	tasks := api.Group("/tasks")
	tasks.Use(protected)
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id/toggle", h.TaskHandler.ToggleTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
