package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultCategory is assigned when a todo is created without a category.
const DefaultCategory = "other"

// Statuses and Priorities enumerate every bucket, in rank order for
// priorities. Stats zero-fill from these so callers always see all keys.
var (
	Statuses   = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Rank orders priorities by severity (low < medium < high < urgent), not
// lexically. Unknown values rank below low.
func (p Priority) Rank() int {
	return priorityRank[p]
}

type Todo struct {
	ID               string
	UserID           string
	Title            string
	Description      *string
	Priority         Priority
	Status           Status
	Category         string
	Tags             []string
	DueDate          *time.Time
	EstimatedMinutes *int
	ActualMinutes    *int
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Subtasks         []Subtask
}

type Subtask struct {
	ID          string
	Title       string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	Order       int
}

type CreateTodoInput struct {
	Title            string
	Description      *string
	Priority         Priority // empty means medium
	Category         string   // empty means DefaultCategory
	Tags             []string
	DueDate          *time.Time
	EstimatedMinutes *int
	SubtaskTitles    []string
}

// UpdateTodoInput carries a partial update. Nil pointers mean "leave as is";
// the Set flags distinguish "set to null" from "absent" for nullable fields.
type UpdateTodoInput struct {
	Title               *string
	Description         *string
	DescriptionSet      bool
	Priority            *Priority
	Status              *Status
	Category            *string
	Tags                []string
	TagsSet             bool
	DueDate             *time.Time
	DueDateSet          bool
	EstimatedMinutes    *int
	EstimatedMinutesSet bool
	ActualMinutes       *int
	ActualMinutesSet    bool
}

type UpdateSubtaskInput struct {
	Title     *string
	Completed *bool
}

// Clone returns a deep copy so callers on either side of the store boundary
// never share slices or pointer targets.
func (t Todo) Clone() Todo {
	out := t
	out.Description = clonePtr(t.Description)
	out.DueDate = clonePtr(t.DueDate)
	out.EstimatedMinutes = clonePtr(t.EstimatedMinutes)
	out.ActualMinutes = clonePtr(t.ActualMinutes)
	out.CompletedAt = clonePtr(t.CompletedAt)
	out.Tags = append([]string{}, t.Tags...)
	out.Subtasks = make([]Subtask, len(t.Subtasks))
	for i, st := range t.Subtasks {
		st.CompletedAt = clonePtr(st.CompletedAt)
		out.Subtasks[i] = st
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	value := *p
	return &value
}
