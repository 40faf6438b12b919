package domain

import "time"

type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
	SortByDueDate   SortKey = "dueDate"
	SortByPriority  SortKey = "priority"
	SortByTitle     SortKey = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// MaxPageLimit bounds the page size accepted from callers. Enforced by the
// validation layer; the query engine trusts its inputs.
const MaxPageLimit = 100

// ListFilter narrows, orders, and pages a listing query. All predicates are
// optional and combine as a conjunction.
type ListFilter struct {
	Status    *Status
	Priority  *Priority
	Category  *string
	Search    string
	Tags      []string
	DueBefore *time.Time
	DueAfter  *time.Time
	SortBy    SortKey
	SortOrder SortOrder
	Page      int
	Limit     int
}

type TodoPage struct {
	Items      []Todo
	Total      int
	Page       int
	Limit      int
	TotalPages int
}
