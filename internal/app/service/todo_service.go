package service

import (
	"context"
	"time"

	"todohub/internal/app/query"
	"todohub/internal/core/domain"
	"todohub/internal/core/ports"
)

// TodoService composes the record store with the query engine behind the
// port the http adapter consumes.
type TodoService struct {
	todoStore ports.TodoStore
	now       func() time.Time
}

func NewTodoService(todoStore ports.TodoStore) *TodoService {
	return &TodoService{todoStore: todoStore, now: time.Now}
}

func (s *TodoService) CreateTodo(_ context.Context, userID string, input domain.CreateTodoInput) (domain.Todo, error) {
	return s.todoStore.Create(userID, input), nil
}

func (s *TodoService) GetTodo(_ context.Context, id, userID string) (domain.Todo, error) {
	return s.todoStore.GetByID(id, userID)
}

func (s *TodoService) ListTodos(_ context.Context, userID string, filter domain.ListFilter) (domain.TodoPage, error) {
	return query.List(s.todoStore.ListByUser(userID), filter), nil
}

func (s *TodoService) UpdateTodo(_ context.Context, id, userID string, input domain.UpdateTodoInput) (domain.Todo, error) {
	return s.todoStore.Update(id, userID, input)
}

func (s *TodoService) DeleteTodo(_ context.Context, id, userID string) error {
	return s.todoStore.Delete(id, userID)
}

func (s *TodoService) GetStats(_ context.Context, userID string) (domain.TodoStats, error) {
	return query.Stats(s.todoStore.ListByUser(userID), s.now()), nil
}

func (s *TodoService) AddSubtask(_ context.Context, id, userID, title string) (domain.Todo, error) {
	return s.todoStore.AddSubtask(id, userID, title)
}

func (s *TodoService) UpdateSubtask(_ context.Context, id, userID, subtaskID string, input domain.UpdateSubtaskInput) (domain.Todo, error) {
	return s.todoStore.UpdateSubtask(id, userID, subtaskID, input)
}

func (s *TodoService) DeleteSubtask(_ context.Context, id, userID, subtaskID string) (domain.Todo, error) {
	return s.todoStore.DeleteSubtask(id, userID, subtaskID)
}

var _ ports.TodoService = (*TodoService)(nil)
