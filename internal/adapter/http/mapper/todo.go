package mapper

import (
	"time"

	"todohub/internal/adapter/http/dto"
	"todohub/internal/core/domain"
)

func ToTodoList(page domain.TodoPage) dto.TodoListResponse {
	items := make([]dto.TodoItem, 0, len(page.Items))
	for _, todo := range page.Items {
		items = append(items, ToTodoItem(todo))
	}
	return dto.TodoListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func ToTodoItem(todo domain.Todo) dto.TodoItem {
	item := dto.TodoItem{
		ID:        todo.ID,
		Title:     todo.Title,
		Priority:  string(todo.Priority),
		Status:    string(todo.Status),
		Category:  todo.Category,
		Tags:      todo.Tags,
		CreatedAt: todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt: todo.UpdatedAt.Format(time.RFC3339),
		Subtasks:  make([]dto.SubtaskItem, 0, len(todo.Subtasks)),
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if todo.Description != nil {
		value := *todo.Description
		item.Description = &value
	}

	if todo.DueDate != nil {
		value := todo.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}

	if todo.EstimatedMinutes != nil {
		value := *todo.EstimatedMinutes
		item.EstimatedMinutes = &value
	}

	if todo.ActualMinutes != nil {
		value := *todo.ActualMinutes
		item.ActualMinutes = &value
	}

	if todo.CompletedAt != nil {
		value := todo.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}

	for _, subtask := range todo.Subtasks {
		item.Subtasks = append(item.Subtasks, toSubtaskItem(subtask))
	}

	return item
}

func ToTodoStats(stats domain.TodoStats) dto.TodoStatsResponse {
	out := dto.TodoStatsResponse{
		Total:          stats.Total,
		ByStatus:       make(map[string]int, len(stats.ByStatus)),
		ByPriority:     make(map[string]int, len(stats.ByPriority)),
		ByCategory:     make(map[string]int, len(stats.ByCategory)),
		Overdue:        stats.Overdue,
		CompletionRate: stats.CompletionRate,
	}
	for status, count := range stats.ByStatus {
		out.ByStatus[string(status)] = count
	}
	for priority, count := range stats.ByPriority {
		out.ByPriority[string(priority)] = count
	}
	for category, count := range stats.ByCategory {
		out.ByCategory[category] = count
	}
	return out
}

func toSubtaskItem(subtask domain.Subtask) dto.SubtaskItem {
	item := dto.SubtaskItem{
		ID:        subtask.ID,
		Title:     subtask.Title,
		Completed: subtask.Completed,
		CreatedAt: subtask.CreatedAt.Format(time.RFC3339),
		Order:     subtask.Order,
	}
	if subtask.CompletedAt != nil {
		value := subtask.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}
	return item
}
