package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"todohub/internal/core/domain"
	"todohub/internal/core/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
  id                CHAR(36)     PRIMARY KEY,
  user_id           VARCHAR(64)  NOT NULL,
  title             VARCHAR(200) NOT NULL,
  description       TEXT         NULL,
  priority          VARCHAR(16)  NOT NULL,
  status            VARCHAR(16)  NOT NULL,
  category          VARCHAR(64)  NOT NULL,
  tags              JSON         NULL,
  due_date          DATETIME     NULL,
  estimated_minutes INT          NULL,
  actual_minutes    INT          NULL,
  completed_at      DATETIME     NULL,
  created_at        DATETIME     NOT NULL,
  updated_at        DATETIME     NOT NULL,
  KEY idx_todos_user_id (user_id)
);

CREATE TABLE IF NOT EXISTS subtasks (
  id           CHAR(36)     PRIMARY KEY,
  todo_id      CHAR(36)     NOT NULL,
  title        VARCHAR(100) NOT NULL,
  completed    TINYINT(1)   NOT NULL DEFAULT 0,
  completed_at DATETIME     NULL,
  created_at   DATETIME     NOT NULL,
  position     INT          NOT NULL,
  KEY idx_subtasks_todo_id (todo_id),
  CONSTRAINT fk_subtasks_todo FOREIGN KEY (todo_id) REFERENCES todos (id) ON DELETE CASCADE
);
`

const insertTodoQuery = `
INSERT INTO todos
  (id, user_id, title, description, priority, status, category, tags,
   due_date, estimated_minutes, actual_minutes, completed_at, created_at, updated_at)
VALUES
  (:id, :user_id, :title, :description, :priority, :status, :category, :tags,
   :due_date, :estimated_minutes, :actual_minutes, :completed_at, :created_at, :updated_at)
`

const insertSubtaskQuery = `
INSERT INTO subtasks
  (id, todo_id, title, completed, completed_at, created_at, position)
VALUES
  (:id, :todo_id, :title, :completed, :completed_at, :created_at, :position)
`

// TodoRepository persists full snapshots of the in-memory store. It is
// invoked at process boundaries only (load on start, save on shutdown), never
// on the request path.
type TodoRepository struct {
	db *sqlx.DB
}

var _ ports.TodoRepository = (*TodoRepository)(nil)

func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Migrate creates the snapshot tables when they do not exist yet. Relies on
// multiStatements=true in the DSN.
func (r *TodoRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

type todoRow struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	Title            string         `db:"title"`
	Description      sql.NullString `db:"description"`
	Priority         string         `db:"priority"`
	Status           string         `db:"status"`
	Category         string         `db:"category"`
	Tags             sql.NullString `db:"tags"`
	DueDate          sql.NullTime   `db:"due_date"`
	EstimatedMinutes sql.NullInt64  `db:"estimated_minutes"`
	ActualMinutes    sql.NullInt64  `db:"actual_minutes"`
	CompletedAt      sql.NullTime   `db:"completed_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type subtaskRow struct {
	ID          string       `db:"id"`
	TodoID      string       `db:"todo_id"`
	Title       string       `db:"title"`
	Completed   bool         `db:"completed"`
	CompletedAt sql.NullTime `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	Position    int          `db:"position"`
}

func (r *TodoRepository) LoadAll(ctx context.Context) ([]domain.Todo, error) {
	var rows []todoRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM todos"); err != nil {
		return nil, err
	}

	var subtaskRows []subtaskRow
	if err := r.db.SelectContext(ctx, &subtaskRows, "SELECT * FROM subtasks ORDER BY todo_id, position"); err != nil {
		return nil, err
	}

	subtasksByTodo := make(map[string][]domain.Subtask)
	for _, row := range subtaskRows {
		subtasksByTodo[row.TodoID] = append(subtasksByTodo[row.TodoID], mapSubtaskRow(row))
	}

	todos := make([]domain.Todo, 0, len(rows))
	for _, row := range rows {
		todo, err := mapTodoRow(row)
		if err != nil {
			return nil, err
		}
		if subtasks, ok := subtasksByTodo[todo.ID]; ok {
			todo.Subtasks = subtasks
		}
		todos = append(todos, todo)
	}

	return todos, nil
}

// SaveAll replaces the persisted snapshot wholesale inside one transaction.
func (r *TodoRepository) SaveAll(ctx context.Context, todos []domain.Todo) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM subtasks"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM todos"); err != nil {
		return err
	}

	for _, todo := range todos {
		row, err := mapTodoToRow(todo)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertTodoQuery, row); err != nil {
			return err
		}
		for _, subtask := range todo.Subtasks {
			if _, err := tx.NamedExecContext(ctx, insertSubtaskQuery, mapSubtaskToRow(todo.ID, subtask)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func mapTodoRow(row todoRow) (domain.Todo, error) {
	todo := domain.Todo{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Priority:  domain.Priority(row.Priority),
		Status:    domain.Status(row.Status),
		Category:  row.Category,
		Tags:      []string{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Subtasks:  []domain.Subtask{},
	}

	if row.Description.Valid {
		value := row.Description.String
		todo.Description = &value
	}

	// Tags is nullable in storage but never nil on the domain side.
	if row.Tags.Valid {
		if err := json.Unmarshal([]byte(row.Tags.String), &todo.Tags); err != nil {
			return domain.Todo{}, fmt.Errorf("decode tags for todo %s: %w", row.ID, err)
		}
		if todo.Tags == nil {
			todo.Tags = []string{}
		}
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		todo.DueDate = &value
	}

	if row.EstimatedMinutes.Valid {
		value := int(row.EstimatedMinutes.Int64)
		todo.EstimatedMinutes = &value
	}

	if row.ActualMinutes.Valid {
		value := int(row.ActualMinutes.Int64)
		todo.ActualMinutes = &value
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		todo.CompletedAt = &value
	}

	return todo, nil
}

func mapSubtaskRow(row subtaskRow) domain.Subtask {
	subtask := domain.Subtask{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
		Order:     row.Position,
	}
	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		subtask.CompletedAt = &value
	}
	return subtask
}

func mapTodoToRow(todo domain.Todo) (todoRow, error) {
	row := todoRow{
		ID:        todo.ID,
		UserID:    todo.UserID,
		Title:     todo.Title,
		Priority:  string(todo.Priority),
		Status:    string(todo.Status),
		Category:  todo.Category,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}

	if todo.Description != nil {
		row.Description = sql.NullString{String: *todo.Description, Valid: true}
	}

	if len(todo.Tags) > 0 {
		encoded, err := json.Marshal(todo.Tags)
		if err != nil {
			return todoRow{}, fmt.Errorf("encode tags for todo %s: %w", todo.ID, err)
		}
		row.Tags = sql.NullString{String: string(encoded), Valid: true}
	}

	if todo.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *todo.DueDate, Valid: true}
	}

	if todo.EstimatedMinutes != nil {
		row.EstimatedMinutes = sql.NullInt64{Int64: int64(*todo.EstimatedMinutes), Valid: true}
	}

	if todo.ActualMinutes != nil {
		row.ActualMinutes = sql.NullInt64{Int64: int64(*todo.ActualMinutes), Valid: true}
	}

	if todo.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *todo.CompletedAt, Valid: true}
	}

	return row, nil
}

func mapSubtaskToRow(todoID string, subtask domain.Subtask) subtaskRow {
	row := subtaskRow{
		ID:        subtask.ID,
		TodoID:    todoID,
		Title:     subtask.Title,
		Completed: subtask.Completed,
		CreatedAt: subtask.CreatedAt,
		Position:  subtask.Order,
	}
	if subtask.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *subtask.CompletedAt, Valid: true}
	}
	return row
}
