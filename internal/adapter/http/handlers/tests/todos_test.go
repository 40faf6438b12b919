package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todohub/internal/adapter/http/dto"
	"todohub/internal/adapter/http/handlers"
	"todohub/internal/adapter/http/middleware"
	"todohub/internal/core/domain"
	"todohub/pkg/apierrors"
	"todohub/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type todoServiceMock struct {
	mock.Mock
}

func (m *todoServiceMock) CreateTodo(ctx context.Context, userID string, input domain.CreateTodoInput) (domain.Todo, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Todo), args.Error(1)
}

func (m *todoServiceMock) GetTodo(ctx context.Context, id, userID string) (domain.Todo, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Todo), args.Error(1)
}

func (m *todoServiceMock) ListTodos(ctx context.Context, userID string, filter domain.ListFilter) (domain.TodoPage, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(domain.TodoPage), args.Error(1)
}

func (m *todoServiceMock) UpdateTodo(ctx context.Context, id, userID string, input domain.UpdateTodoInput) (domain.Todo, error) {
	args := m.Called(ctx, id, userID, input)
	return args.Get(0).(domain.Todo), args.Error(1)
}

func (m *todoServiceMock) DeleteTodo(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *todoServiceMock) GetStats(ctx context.Context, userID string) (domain.TodoStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.TodoStats), args.Error(1)
}

func (m *todoServiceMock) AddSubtask(ctx context.Context, id, userID, title string) (domain.Todo, error) {
	args := m.Called(ctx, id, userID, title)
	return args.Get(0).(domain.Todo), args.Error(1)
}

func (m *todoServiceMock) UpdateSubtask(ctx context.Context, id, userID, subtaskID string, input domain.UpdateSubtaskInput) (domain.Todo, error) {
	args := m.Called(ctx, id, userID, subtaskID, input)
	return args.Get(0).(domain.Todo), args.Error(1)
}

func (m *todoServiceMock) DeleteSubtask(ctx context.Context, id, userID, subtaskID string) (domain.Todo, error) {
	args := m.Called(ctx, id, userID, subtaskID)
	return args.Get(0).(domain.Todo), args.Error(1)
}

func newRouter(handler *handlers.TodoHandler) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/todos", middleware.LanguageMiddleware(), middleware.IdentityMiddleware())
	group.POST("", handler.CreateTodo)
	group.GET("", handler.ListTodos)
	group.GET("/stats", handler.GetStats)
	group.GET("/:id", handler.GetTodo)
	group.PATCH("/:id", handler.UpdateTodo)
	group.DELETE("/:id", handler.DeleteTodo)
	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Accept-Language", translator.LanguageEn)
	req.Header.Set("X-User-ID", "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleTodo() domain.Todo {
	createdAt := time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC)
	due := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	description := "two liters"
	return domain.Todo{
		ID:          "todo-1",
		UserID:      "alice",
		Title:       "Buy milk",
		Description: &description,
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusPending,
		Category:    "errands",
		Tags:        []string{"shopping"},
		DueDate:     &due,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Subtasks: []domain.Subtask{
			{ID: "sub-1", Title: "Find wallet", CreatedAt: createdAt, Order: 0},
		},
	}
}

func TestTodoHandler_CreateTodo_Success(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("CreateTodo", mock.Anything, "alice", mock.MatchedBy(func(input domain.CreateTodoInput) bool {
		return input.Title == "Buy milk" && input.Priority == domain.PriorityHigh
	})).Return(sampleTodo(), nil).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodPost, "/api/todos", `{"title": "Buy milk", "priority": "high", "tags": ["shopping"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TodoItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "todo-1", got.ID)
	require.Equal(t, "Buy milk", got.Title)
	require.Equal(t, "high", got.Priority)
	require.Equal(t, "pending", got.Status)
	require.Equal(t, []string{"shopping"}, got.Tags)
	require.Equal(t, "2026-02-20T00:00:00Z", *got.DueDate)
	require.Len(t, got.Subtasks, 1)
	require.Equal(t, "sub-1", got.Subtasks[0].ID)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_CreateTodo_InvalidPayload(t *testing.T) {
	serviceMock := new(todoServiceMock)
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodPost, "/api/todos", `{"title": ""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusBadRequest, got.ErrDetails.Code)
	require.Equal(t, "Invalid todo payload", got.ErrDetails.Message)
}

func TestTodoHandler_MissingIdentity(t *testing.T) {
	serviceMock := new(todoServiceMock)
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusUnauthorized, got.ErrDetails.Code)
	require.Equal(t, "Missing user identity", got.ErrDetails.Message)
}

func TestTodoHandler_ListTodos_Success(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("ListTodos", mock.Anything, "alice", mock.MatchedBy(func(filter domain.ListFilter) bool {
		return filter.SortBy == domain.SortByPriority &&
			filter.SortOrder == domain.SortDesc &&
			filter.Page == 1 &&
			filter.Limit == 10
	})).Return(domain.TodoPage{
		Items:      []domain.Todo{sampleTodo()},
		Total:      1,
		Page:       1,
		Limit:      10,
		TotalPages: 1,
	}, nil).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodGet, "/api/todos?sort_by=priority&sort_order=desc&limit=10", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TodoListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1, got.Total)
	require.Equal(t, 1, got.TotalPages)
	require.Len(t, got.Items, 1)
	require.Equal(t, "todo-1", got.Items[0].ID)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_ListTodos_InvalidQuery(t *testing.T) {
	serviceMock := new(todoServiceMock)
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodGet, "/api/todos?limit=500", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid list query", got.ErrDetails.Message)
}

func TestTodoHandler_GetTodo_NotFound(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("GetTodo", mock.Anything, "missing", "alice").Return(domain.Todo{}, domain.ErrTodoNotFound).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodGet, "/api/todos/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusNotFound, got.ErrDetails.Code)
	require.Equal(t, "Todo not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_GetTodo_NotFound_French(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("GetTodo", mock.Anything, "missing", "alice").Return(domain.Todo{}, domain.ErrTodoNotFound).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	req := httptest.NewRequest(http.MethodGet, "/api/todos/missing", nil)
	req.Header.Set("Accept-Language", translator.LanguageFr)
	req.Header.Set("X-User-ID", "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Tâche introuvable", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_UpdateTodo_Success(t *testing.T) {
	updated := sampleTodo()
	updated.Status = domain.StatusCompleted

	serviceMock := new(todoServiceMock)
	serviceMock.On("UpdateTodo", mock.Anything, "todo-1", "alice", mock.MatchedBy(func(input domain.UpdateTodoInput) bool {
		return input.Status != nil && *input.Status == domain.StatusCompleted && input.Title == nil
	})).Return(updated, nil).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodPatch, "/api/todos/todo-1", `{"status": "completed"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TodoItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "completed", got.Status)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_UpdateTodo_EmptyBody(t *testing.T) {
	serviceMock := new(todoServiceMock)
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodPatch, "/api/todos/todo-1", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoHandler_UpdateTodo_InvalidFieldFromCore(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("UpdateTodo", mock.Anything, "todo-1", "alice", mock.Anything).
		Return(domain.Todo{}, domain.ErrInvalidField).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodPatch, "/api/todos/todo-1", `{"status": "completed"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_DeleteTodo_Success(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("DeleteTodo", mock.Anything, "todo-1", "alice").Return(nil).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodDelete, "/api/todos/todo-1", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_DeleteTodo_NotFound(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("DeleteTodo", mock.Anything, "missing", "alice").Return(domain.ErrTodoNotFound).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodDelete, "/api/todos/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTodoHandler_GetStats_Success(t *testing.T) {
	serviceMock := new(todoServiceMock)
	serviceMock.On("GetStats", mock.Anything, "alice").Return(domain.TodoStats{
		Total: 3,
		ByStatus: map[domain.Status]int{
			domain.StatusPending:    1,
			domain.StatusInProgress: 0,
			domain.StatusCompleted:  2,
			domain.StatusCancelled:  0,
		},
		ByPriority: map[domain.Priority]int{
			domain.PriorityLow:    1,
			domain.PriorityMedium: 0,
			domain.PriorityHigh:   1,
			domain.PriorityUrgent: 1,
		},
		ByCategory:     map[string]int{"errands": 3},
		Overdue:        1,
		CompletionRate: 2.0 / 3.0,
	}, nil).Once()
	router := newRouter(handlers.NewTodoHandler(serviceMock))

	rec := doRequest(router, http.MethodGet, "/api/todos/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TodoStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 3, got.Total)
	require.Equal(t, 1, got.Overdue)
	require.Equal(t, 2, got.ByStatus["completed"])
	require.Equal(t, 0, got.ByStatus["cancelled"])
	require.Equal(t, 1, got.ByPriority["urgent"])
	require.Equal(t, 3, got.ByCategory["errands"])
	require.InDelta(t, 2.0/3.0, got.CompletionRate, 1e-9)
	serviceMock.AssertExpectations(t)
}
