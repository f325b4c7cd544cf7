package domain

import "time"

// TaskStatus represents the progress state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the fixed task states.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work assigned to a user and optionally linked to a customer.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       TaskStatus `json:"status"`
	DueDate      time.Time  `json:"dueDate"`
	AssignedToID string     `json:"assignedToId"`
	CustomerID   string     `json:"customerId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TaskView is the projection returned by task listing and lookup. It never
// carries the assignee's password hash.
type TaskView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Status      TaskStatus       `json:"status"`
	Description string           `json:"description"`
	DueDate     time.Time        `json:"dueDate"`
	AssignedTo  *UserSummary     `json:"assignedTo"`
	Customer    *CustomerSummary `json:"customer"`
}
