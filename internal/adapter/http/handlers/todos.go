package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"todohub/internal/adapter/http/dto"
	"todohub/internal/adapter/http/mapper"
	"todohub/internal/adapter/http/middleware"
	"todohub/internal/adapter/http/validation"
	"todohub/internal/core/domain"
	"todohub/internal/core/ports"
	"todohub/pkg/apierrors"
)

type TodoHandler struct {
	todoService ports.TodoService
}

func NewTodoHandler(todoService ports.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTodoInput(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	todo, err := h.todoService.CreateTodo(c.Request.Context(), userID, input)
	if err != nil {
		zap.L().Error("failed to create todo", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTodo, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTodoItem(todo))
}

func (h *TodoHandler) ListTodos(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	filter, err := validation.ParseListFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidListQuery, lang),
		)
		return
	}

	page, err := h.todoService.ListTodos(c.Request.Context(), userID, filter)
	if err != nil {
		zap.L().Error("failed to list todos", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTodos, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoList(page))
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	todo, err := h.todoService.GetTodo(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTodoNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to fetch todo", zap.String("todo_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailFetchTodo, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoItem(todo))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTodoInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), c.Param("id"), userID, input)
	if err != nil {
		h.writeTodoMutationError(c, lang, err, apierrors.MsgFailUpdateTodo, "failed to update todo")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoItem(todo))
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	if err := h.todoService.DeleteTodo(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTodoNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to delete todo", zap.String("todo_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTodo, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TodoHandler) GetStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	stats, err := h.todoService.GetStats(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to compute stats", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailFetchStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoStats(stats))
}

func (h *TodoHandler) AddSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	todo, err := h.todoService.AddSubtask(c.Request.Context(), c.Param("id"), userID, req.Title)
	if err != nil {
		h.writeTodoMutationError(c, lang, err, apierrors.MsgFailUpdateTodo, "failed to add subtask")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTodoItem(todo))
}

func (h *TodoHandler) UpdateSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.UpdateSubtaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateSubtaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
		return
	}

	todo, err := h.todoService.UpdateSubtask(c.Request.Context(), c.Param("id"), userID, c.Param("subtaskId"), input)
	if err != nil {
		h.writeTodoMutationError(c, lang, err, apierrors.MsgFailUpdateTodo, "failed to update subtask")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoItem(todo))
}

func (h *TodoHandler) DeleteSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	todo, err := h.todoService.DeleteSubtask(c.Request.Context(), c.Param("id"), userID, c.Param("subtaskId"))
	if err != nil {
		h.writeTodoMutationError(c, lang, err, apierrors.MsgFailDeleteTodo, "failed to delete subtask")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoItem(todo))
}

// writeTodoMutationError maps the domain taxonomy onto HTTP: both flavors of
// not-found stay 404, invalid merges are 400, anything else is 500.
func (h *TodoHandler) writeTodoMutationError(c *gin.Context, lang string, err error, failMsgKey, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTodoNotFound, lang),
		)
	case errors.Is(err, domain.ErrSubtaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgSubtaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrInvalidField):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoPayload, lang),
		)
	default:
		zap.L().Error(logMsg, zap.String("todo_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsgKey, lang),
		)
	}
}
