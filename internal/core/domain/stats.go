package domain

// TodoStats is the derived summary over a user's full record set. ByStatus
// and ByPriority always contain every bucket, zero-filled; ByCategory only
// contains categories that occur.
type TodoStats struct {
	Total          int
	ByStatus       map[Status]int
	ByPriority     map[Priority]int
	ByCategory     map[string]int
	Overdue        int
	CompletionRate float64
}
