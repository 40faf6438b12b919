package dto

type SubtaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	Order       int     `json:"order"`
}

type TodoItem struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      *string       `json:"description,omitempty"`
	Priority         string        `json:"priority"`
	Status           string        `json:"status"`
	Category         string        `json:"category"`
	Tags             []string      `json:"tags"`
	DueDate          *string       `json:"due_date,omitempty"`
	EstimatedMinutes *int          `json:"estimated_minutes,omitempty"`
	ActualMinutes    *int          `json:"actual_minutes,omitempty"`
	CompletedAt      *string       `json:"completed_at,omitempty"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
	Subtasks         []SubtaskItem `json:"subtasks"`
}

type TodoListResponse struct {
	Items      []TodoItem `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}

type TodoStatsResponse struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ByPriority     map[string]int `json:"by_priority"`
	ByCategory     map[string]int `json:"by_category"`
	Overdue        int            `json:"overdue"`
	CompletionRate float64        `json:"completion_rate"`
}

type CreateTodoRequest struct {
	Title            string   `json:"title" binding:"required,max=200"`
	Description      *string  `json:"description" binding:"omitempty,max=1000"`
	Priority         *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Category         *string  `json:"category" binding:"omitempty,max=64"`
	Tags             []string `json:"tags" binding:"omitempty,dive,required,max=64"`
	DueDate          *string  `json:"due_date" binding:"omitempty"`
	EstimatedMinutes *int     `json:"estimated_minutes" binding:"omitempty,gte=0"`
	Subtasks         []string `json:"subtasks" binding:"omitempty,dive,required,max=100"`
}

type UpdateTodoRequest struct {
	Title            *string  `json:"title" binding:"omitempty,max=200"`
	Description      *string  `json:"description" binding:"omitempty,max=1000"`
	Priority         *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status           *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Category         *string  `json:"category" binding:"omitempty,max=64"`
	Tags             []string `json:"tags" binding:"omitempty,dive,required,max=64"`
	DueDate          *string  `json:"due_date" binding:"omitempty"`
	EstimatedMinutes *int     `json:"estimated_minutes" binding:"omitempty,gte=0"`
	ActualMinutes    *int     `json:"actual_minutes" binding:"omitempty,gte=0"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

type UpdateSubtaskRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=100"`
	Completed *bool   `json:"completed"`
}
