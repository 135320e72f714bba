package handlers

import (
	"todosync/domain/services"
)

// Services contains the services the handlers need.
type Services struct {
	TaskService services.TaskService
	UserService services.UserService
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	TaskHandler *TaskHandler
	UserHandler *UserHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TaskHandler: NewTaskHandler(services.TaskService),
		UserHandler: NewUserHandler(services.UserService),
	}
}
