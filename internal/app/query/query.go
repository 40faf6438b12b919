// Package query implements the read side over a snapshot of one user's
// records: predicate filtering, single-key sorting with fixed tie-break
// encodings, pagination, and statistics. Every function is pure, so reads
// are safe to run concurrently.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"todohub/internal/core/domain"
)

// List applies filter, sort, and pagination in one pass and never mutates
// its input slice.
func List(todos []domain.Todo, filter domain.ListFilter) domain.TodoPage {
	matched := Filter(todos, filter)
	Sort(matched, filter.SortBy, filter.SortOrder)
	return paginate(matched, filter.Page, filter.Limit)
}

// Filter returns the records passing every specified predicate. Predicates
// are independent, so application order does not matter.
func Filter(todos []domain.Todo, filter domain.ListFilter) []domain.Todo {
	matched := make([]domain.Todo, 0, len(todos))
	for _, todo := range todos {
		if matches(todo, filter) {
			matched = append(matched, todo)
		}
	}
	return matched
}

func matches(todo domain.Todo, filter domain.ListFilter) bool {
	if filter.Status != nil && todo.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && todo.Priority != *filter.Priority {
		return false
	}
	if filter.Category != nil && todo.Category != *filter.Category {
		return false
	}
	if filter.Search != "" && !matchesSearch(todo, filter.Search) {
		return false
	}
	if len(filter.Tags) > 0 && !hasAnyTag(todo.Tags, filter.Tags) {
		return false
	}
	if filter.DueBefore != nil {
		// A record without a due date never passes a due-date bound.
		if todo.DueDate == nil || todo.DueDate.After(*filter.DueBefore) {
			return false
		}
	}
	if filter.DueAfter != nil {
		if todo.DueDate == nil || todo.DueDate.Before(*filter.DueAfter) {
			return false
		}
	}
	return true
}

func matchesSearch(todo domain.Todo, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(todo.Title), term) {
		return true
	}
	return todo.Description != nil && strings.Contains(strings.ToLower(*todo.Description), term)
}

func hasAnyTag(tags, wanted []string) bool {
	for _, tag := range tags {
		for _, want := range wanted {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// Sort orders todos in place by a single key. The sort is stable and applies
// no secondary tie-break; descending just flips the comparator.
func Sort(todos []domain.Todo, key domain.SortKey, order domain.SortOrder) {
	less := lessFunc(key)
	if order == domain.SortDesc {
		asc := less
		less = func(a, b domain.Todo) bool { return asc(b, a) }
	}
	sort.SliceStable(todos, func(i, j int) bool {
		return less(todos[i], todos[j])
	})
}

func lessFunc(key domain.SortKey) func(a, b domain.Todo) bool {
	switch key {
	case domain.SortByPriority:
		return func(a, b domain.Todo) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case domain.SortByDueDate:
		return func(a, b domain.Todo) bool { return dueOrZero(a).Before(dueOrZero(b)) }
	case domain.SortByTitle:
		collator := collate.New(language.English, collate.IgnoreCase)
		return func(a, b domain.Todo) bool { return collator.CompareString(a.Title, b.Title) < 0 }
	case domain.SortByUpdatedAt:
		return func(a, b domain.Todo) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return func(a, b domain.Todo) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// dueOrZero treats a missing due date as the earliest possible value, which
// puts undated records first ascending and last descending.
func dueOrZero(todo domain.Todo) time.Time {
	if todo.DueDate == nil {
		return time.Time{}
	}
	return *todo.DueDate
}

func paginate(todos []domain.Todo, page, limit int) domain.TodoPage {
	total := len(todos)
	totalPages := (total + limit - 1) / limit

	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return domain.TodoPage{
		Items:      todos[offset:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// Stats summarizes a user's full record set. Overdue counts any record whose
// due date has passed and that is not completed; cancelled-but-late records
// count too, since overdue tracks due-date slippage, not liveness.
func Stats(todos []domain.Todo, now time.Time) domain.TodoStats {
	stats := domain.TodoStats{
		Total:      len(todos),
		ByStatus:   make(map[domain.Status]int, len(domain.Statuses)),
		ByPriority: make(map[domain.Priority]int, len(domain.Priorities)),
		ByCategory: make(map[string]int),
	}
	for _, status := range domain.Statuses {
		stats.ByStatus[status] = 0
	}
	for _, priority := range domain.Priorities {
		stats.ByPriority[priority] = 0
	}

	for _, todo := range todos {
		stats.ByStatus[todo.Status]++
		stats.ByPriority[todo.Priority]++
		stats.ByCategory[todo.Category]++
		if todo.DueDate != nil && todo.DueDate.Before(now) && todo.Status != domain.StatusCompleted {
			stats.Overdue++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.ByStatus[domain.StatusCompleted]) / float64(stats.Total)
	}
	return stats
}
