package ports

import (
	"context"

	"todohub/internal/core/domain"
)

// TodoStore owns the canonical in-memory collection. Operations are
// synchronous and non-blocking, so they take no context.
type TodoStore interface {
	Create(userID string, input domain.CreateTodoInput) domain.Todo
	GetByID(id, userID string) (domain.Todo, error)
	Update(id, userID string, input domain.UpdateTodoInput) (domain.Todo, error)
	Delete(id, userID string) error
	ListByUser(userID string) []domain.Todo
	AddSubtask(id, userID, title string) (domain.Todo, error)
	UpdateSubtask(id, userID, subtaskID string, input domain.UpdateSubtaskInput) (domain.Todo, error)
	DeleteSubtask(id, userID, subtaskID string) (domain.Todo, error)
	ReplaceAll(todos []domain.Todo)
	Snapshot() []domain.Todo
}

type TodoService interface {
	CreateTodo(ctx context.Context, userID string, input domain.CreateTodoInput) (domain.Todo, error)
	GetTodo(ctx context.Context, id, userID string) (domain.Todo, error)
	ListTodos(ctx context.Context, userID string, filter domain.ListFilter) (domain.TodoPage, error)
	UpdateTodo(ctx context.Context, id, userID string, input domain.UpdateTodoInput) (domain.Todo, error)
	DeleteTodo(ctx context.Context, id, userID string) error
	GetStats(ctx context.Context, userID string) (domain.TodoStats, error)
	AddSubtask(ctx context.Context, id, userID, title string) (domain.Todo, error)
	UpdateSubtask(ctx context.Context, id, userID, subtaskID string, input domain.UpdateSubtaskInput) (domain.Todo, error)
	DeleteSubtask(ctx context.Context, id, userID, subtaskID string) (domain.Todo, error)
}

// TodoRepository is the durable snapshot collaborator, invoked at process
// boundaries only.
type TodoRepository interface {
	LoadAll(ctx context.Context) ([]domain.Todo, error)
	SaveAll(ctx context.Context, todos []domain.Todo) error
}
