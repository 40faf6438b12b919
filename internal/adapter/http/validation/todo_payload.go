package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"todohub/internal/adapter/http/dto"
	"todohub/internal/core/domain"
)

var (
	ErrInvalidTodoPayload = errors.New("invalid todo payload")
	ErrInvalidListQuery   = errors.New("invalid list query")
)

const (
	defaultPageLimit = 20
	dueDateLayout    = time.RFC3339
)

func BuildCreateTodoInput(req dto.CreateTodoRequest) (domain.CreateTodoInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTodoInput{}, ErrInvalidTodoPayload
	}

	input := domain.CreateTodoInput{
		Title:            title,
		Description:      req.Description,
		Tags:             req.Tags,
		EstimatedMinutes: req.EstimatedMinutes,
		SubtaskTitles:    req.Subtasks,
	}

	if req.Priority != nil {
		input.Priority = domain.Priority(*req.Priority)
	}
	if req.Category != nil {
		input.Category = strings.TrimSpace(*req.Category)
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			return domain.CreateTodoInput{}, ErrInvalidTodoPayload
		}
		input.DueDate = &dueDate
	}

	return input, nil
}

// BuildUpdateTodoInput turns a partial-update body into a merge input. The
// raw message map distinguishes absent fields from fields set to null, and a
// field present with the wrong type arrives as nil in the typed request.
func BuildUpdateTodoInput(req dto.UpdateTodoRequest, raw map[string]json.RawMessage) (domain.UpdateTodoInput, error) {
	if !hasTodoUpdateFields(raw) {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}

	var title *string
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
		}
		title = &value
	}

	var priority *domain.Priority
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}
	if req.Priority != nil {
		value := domain.Priority(*req.Priority)
		priority = &value
	}

	var status *domain.Status
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}
	if req.Status != nil {
		value := domain.Status(*req.Status)
		status = &value
	}

	var category *string
	if hasJSONField(raw, "category") && req.Category == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}
	if req.Category != nil {
		value := strings.TrimSpace(*req.Category)
		if value == "" {
			return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
		}
		category = &value
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}

	tagsSet := hasJSONField(raw, "tags")
	if tagsSet && !isJSONNull(raw["tags"]) && req.Tags == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}

	var dueDate *time.Time
	dueDateSet := hasJSONField(raw, "due_date")
	if dueDateSet && !isJSONNull(raw["due_date"]) {
		if req.DueDate == nil {
			return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
		}
		parsed, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
		}
		dueDate = &parsed
	}

	estimatedSet := hasJSONField(raw, "estimated_minutes")
	if estimatedSet && !isJSONNull(raw["estimated_minutes"]) && req.EstimatedMinutes == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}

	actualSet := hasJSONField(raw, "actual_minutes")
	if actualSet && !isJSONNull(raw["actual_minutes"]) && req.ActualMinutes == nil {
		return domain.UpdateTodoInput{}, ErrInvalidTodoPayload
	}

	return domain.UpdateTodoInput{
		Title:               title,
		Description:         req.Description,
		DescriptionSet:      descriptionSet,
		Priority:            priority,
		Status:              status,
		Category:            category,
		Tags:                req.Tags,
		TagsSet:             tagsSet,
		DueDate:             dueDate,
		DueDateSet:          dueDateSet,
		EstimatedMinutes:    req.EstimatedMinutes,
		EstimatedMinutesSet: estimatedSet,
		ActualMinutes:       req.ActualMinutes,
		ActualMinutesSet:    actualSet,
	}, nil
}

func BuildUpdateSubtaskInput(req dto.UpdateSubtaskRequest, raw map[string]json.RawMessage) (domain.UpdateSubtaskInput, error) {
	if !hasJSONField(raw, "title") && !hasJSONField(raw, "completed") {
		return domain.UpdateSubtaskInput{}, ErrInvalidTodoPayload
	}
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateSubtaskInput{}, ErrInvalidTodoPayload
	}
	if hasJSONField(raw, "completed") && req.Completed == nil {
		return domain.UpdateSubtaskInput{}, ErrInvalidTodoPayload
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateSubtaskInput{}, ErrInvalidTodoPayload
		}
		title = &value
	}

	return domain.UpdateSubtaskInput{Title: title, Completed: req.Completed}, nil
}

// ParseListFilter validates listing query params and fills defaults: page 1,
// limit 20 (capped at domain.MaxPageLimit), newest first.
func ParseListFilter(values url.Values) (domain.ListFilter, error) {
	filter := domain.ListFilter{
		Search:    strings.TrimSpace(values.Get("search")),
		SortBy:    domain.SortByCreatedAt,
		SortOrder: domain.SortDesc,
		Page:      1,
		Limit:     defaultPageLimit,
	}

	if value := values.Get("status"); value != "" {
		status := domain.Status(value)
		switch status {
		case domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled:
			filter.Status = &status
		default:
			return domain.ListFilter{}, ErrInvalidListQuery
		}
	}

	if value := values.Get("priority"); value != "" {
		priority := domain.Priority(value)
		if priority.Rank() == 0 {
			return domain.ListFilter{}, ErrInvalidListQuery
		}
		filter.Priority = &priority
	}

	if value := values.Get("category"); value != "" {
		filter.Category = &value
	}

	if value := values.Get("tags"); value != "" {
		for _, tag := range strings.Split(value, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	if value := values.Get("due_before"); value != "" {
		parsed, err := time.Parse(dueDateLayout, value)
		if err != nil {
			return domain.ListFilter{}, ErrInvalidListQuery
		}
		filter.DueBefore = &parsed
	}

	if value := values.Get("due_after"); value != "" {
		parsed, err := time.Parse(dueDateLayout, value)
		if err != nil {
			return domain.ListFilter{}, ErrInvalidListQuery
		}
		filter.DueAfter = &parsed
	}

	if value := values.Get("sort_by"); value != "" {
		key := domain.SortKey(value)
		switch key {
		case domain.SortByCreatedAt, domain.SortByUpdatedAt, domain.SortByDueDate, domain.SortByPriority, domain.SortByTitle:
			filter.SortBy = key
		default:
			return domain.ListFilter{}, ErrInvalidListQuery
		}
	}

	if value := values.Get("sort_order"); value != "" {
		order := domain.SortOrder(value)
		if order != domain.SortAsc && order != domain.SortDesc {
			return domain.ListFilter{}, ErrInvalidListQuery
		}
		filter.SortOrder = order
	}

	if value := values.Get("page"); value != "" {
		page, err := strconv.Atoi(value)
		if err != nil || page < 1 {
			return domain.ListFilter{}, ErrInvalidListQuery
		}
		filter.Page = page
	}

	if value := values.Get("limit"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 1 || limit > domain.MaxPageLimit {
			return domain.ListFilter{}, ErrInvalidListQuery
		}
		filter.Limit = limit
	}

	return filter, nil
}

func hasTodoUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "category") ||
		hasJSONField(raw, "tags") ||
		hasJSONField(raw, "due_date") ||
		hasJSONField(raw, "estimated_minutes") ||
		hasJSONField(raw, "actual_minutes")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
