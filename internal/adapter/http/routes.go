package http

import (
	"todohub/internal/adapter/http/handlers"
	"todohub/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, todoHandler *handlers.TodoHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	todos := api.Group("/todos")
	todos.Use(middleware.IdentityMiddleware())
	{
		todos.POST("", todoHandler.CreateTodo)
		todos.GET("", todoHandler.ListTodos)
		todos.GET("/stats", todoHandler.GetStats)
		todos.GET("/:id", todoHandler.GetTodo)
		todos.PATCH("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
		todos.POST("/:id/subtasks", todoHandler.AddSubtask)
		todos.PATCH("/:id/subtasks/:subtaskId", todoHandler.UpdateSubtask)
		todos.DELETE("/:id/subtasks/:subtaskId", todoHandler.DeleteSubtask)
	}
}
