package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/ports"
)

// Store keeps every todo in memory behind a single lock. byID is the source
// of truth; byUser is a secondary index maintained in the same critical
// section, so the two views never disagree.
type Store struct {
	mu     sync.RWMutex
	byID   map[string]domain.Todo
	byUser map[string]map[string]struct{}
}

var _ ports.TodoStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		byID:   make(map[string]domain.Todo),
		byUser: make(map[string]map[string]struct{}),
	}
}

func (s *Store) Create(userID string, input domain.CreateTodoInput) domain.Todo {
	now := time.Now().UTC()

	todo := domain.Todo{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            input.Title,
		Description:      input.Description,
		Priority:         input.Priority,
		Status:           domain.StatusPending,
		Category:         input.Category,
		Tags:             append([]string{}, input.Tags...),
		DueDate:          input.DueDate,
		EstimatedMinutes: input.EstimatedMinutes,
		CreatedAt:        now,
		UpdatedAt:        now,
		Subtasks:         make([]domain.Subtask, 0, len(input.SubtaskTitles)),
	}
	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}
	if todo.Category == "" {
		todo.Category = domain.DefaultCategory
	}
	for i, title := range input.SubtaskTitles {
		todo.Subtasks = append(todo.Subtasks, domain.Subtask{
			ID:        uuid.NewString(),
			Title:     title,
			CreatedAt: now,
			Order:     i,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[todo.ID] = todo.Clone()
	ids, ok := s.byUser[userID]
	if !ok {
		ids = make(map[string]struct{})
		s.byUser[userID] = ids
	}
	ids[todo.ID] = struct{}{}

	return todo
}

func (s *Store) GetByID(id, userID string) (domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, err := s.getLocked(id, userID)
	if err != nil {
		return domain.Todo{}, err
	}
	return todo.Clone(), nil
}

func (s *Store) Update(id, userID string, input domain.UpdateTodoInput) (domain.Todo, error) {
	if err := validateUpdate(input); err != nil {
		return domain.Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.getLocked(id, userID)
	if err != nil {
		return domain.Todo{}, err
	}

	if input.Title != nil {
		todo.Title = strings.TrimSpace(*input.Title)
	}
	if input.DescriptionSet {
		todo.Description = input.Description
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.Category != nil {
		todo.Category = *input.Category
	}
	if input.TagsSet {
		todo.Tags = append([]string{}, input.Tags...)
	}
	if input.DueDateSet {
		todo.DueDate = input.DueDate
	}
	if input.EstimatedMinutesSet {
		todo.EstimatedMinutes = input.EstimatedMinutes
	}
	if input.ActualMinutesSet {
		todo.ActualMinutes = input.ActualMinutes
	}
	if input.Status != nil && *input.Status != todo.Status {
		todo.Status = *input.Status
		if *input.Status == domain.StatusCompleted {
			completedAt := time.Now().UTC()
			todo.CompletedAt = &completedAt
		} else {
			// Reopened or cancelled: the completion stamp no longer applies.
			todo.CompletedAt = nil
		}
	}
	todo.UpdatedAt = time.Now().UTC()

	// Owner never changes, so the secondary index is untouched.
	s.byID[id] = todo.Clone()
	return todo, nil
}

func (s *Store) Delete(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getLocked(id, userID); err != nil {
		return err
	}

	delete(s.byID, id)
	if ids, ok := s.byUser[userID]; ok {
		delete(ids, id)
		if len(ids) == 0 {
			delete(s.byUser, userID)
		}
	}
	return nil
}

// ListByUser returns the user's records in a fixed order (creation time,
// then id), so repeated listings paginate consistently even when records
// tie on the requested sort key.
func (s *Store) ListByUser(userID string) []domain.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(s.byUser[userID]))
	for id := range s.byUser[userID] {
		todos = append(todos, s.byID[id].Clone())
	}
	sortChronologically(todos)
	return todos
}

func (s *Store) AddSubtask(id, userID, title string) (domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Todo{}, fmt.Errorf("%w: subtask title must not be empty", domain.ErrInvalidField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.getLocked(id, userID)
	if err != nil {
		return domain.Todo{}, err
	}

	now := time.Now().UTC()
	todo.Subtasks = append(todo.Subtasks, domain.Subtask{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		Order:     len(todo.Subtasks),
	})
	todo.UpdatedAt = now

	s.byID[id] = todo.Clone()
	return todo, nil
}

func (s *Store) UpdateSubtask(id, userID, subtaskID string, input domain.UpdateSubtaskInput) (domain.Todo, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return domain.Todo{}, fmt.Errorf("%w: subtask title must not be empty", domain.ErrInvalidField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.getLocked(id, userID)
	if err != nil {
		return domain.Todo{}, err
	}

	index := subtaskIndex(todo, subtaskID)
	if index < 0 {
		return domain.Todo{}, domain.ErrSubtaskNotFound
	}

	now := time.Now().UTC()
	subtask := todo.Subtasks[index]
	if input.Title != nil {
		subtask.Title = strings.TrimSpace(*input.Title)
	}
	if input.Completed != nil && *input.Completed != subtask.Completed {
		subtask.Completed = *input.Completed
		if subtask.Completed {
			completedAt := now
			subtask.CompletedAt = &completedAt
		} else {
			subtask.CompletedAt = nil
		}
	}
	todo.Subtasks[index] = subtask
	todo.UpdatedAt = now

	s.byID[id] = todo.Clone()
	return todo, nil
}

func (s *Store) DeleteSubtask(id, userID, subtaskID string) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.getLocked(id, userID)
	if err != nil {
		return domain.Todo{}, err
	}

	index := subtaskIndex(todo, subtaskID)
	if index < 0 {
		return domain.Todo{}, domain.ErrSubtaskNotFound
	}

	todo.Subtasks = append(todo.Subtasks[:index], todo.Subtasks[index+1:]...)
	todo.UpdatedAt = time.Now().UTC()

	s.byID[id] = todo.Clone()
	return todo, nil
}

// ReplaceAll swaps in a loaded snapshot, rebuilding both indexes.
func (s *Store) ReplaceAll(todos []domain.Todo) {
	byID := make(map[string]domain.Todo, len(todos))
	byUser := make(map[string]map[string]struct{})
	for _, todo := range todos {
		byID[todo.ID] = todo.Clone()
		ids, ok := byUser[todo.UserID]
		if !ok {
			ids = make(map[string]struct{})
			byUser[todo.UserID] = ids
		}
		ids[todo.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = byID
	s.byUser = byUser
}

// Snapshot returns a copy of every record across all users, for SaveAll.
func (s *Store) Snapshot() []domain.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(s.byID))
	for _, todo := range s.byID {
		todos = append(todos, todo.Clone())
	}
	sortChronologically(todos)
	return todos
}

func sortChronologically(todos []domain.Todo) {
	sort.Slice(todos, func(i, j int) bool {
		if !todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].CreatedAt.Before(todos[j].CreatedAt)
		}
		return todos[i].ID < todos[j].ID
	})
}

// getLocked resolves a record under the caller-held lock. A record owned by
// another user is reported exactly like a missing one.
func (s *Store) getLocked(id, userID string) (domain.Todo, error) {
	todo, ok := s.byID[id]
	if !ok || todo.UserID != userID {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	return todo, nil
}

func validateUpdate(input domain.UpdateTodoInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrInvalidField)
	}
	if input.EstimatedMinutes != nil && *input.EstimatedMinutes < 0 {
		return fmt.Errorf("%w: estimated minutes must not be negative", domain.ErrInvalidField)
	}
	if input.ActualMinutes != nil && *input.ActualMinutes < 0 {
		return fmt.Errorf("%w: actual minutes must not be negative", domain.ErrInvalidField)
	}
	return nil
}

func subtaskIndex(todo domain.Todo, subtaskID string) int {
	for i, subtask := range todo.Subtasks {
		if subtask.ID == subtaskID {
			return i
		}
	}
	return -1
}
