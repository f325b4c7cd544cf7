package ports

import (
	"context"
	"time"

	"github.com/99minutos/task-crm/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task for a user.
type CreateTaskInput struct {
	Title             string
	Description       string
	AssignedUserEmail string
	Status            domain.TaskStatus
	// DueDate defaults to the creation time when nil.
	DueDate *time.Time
}

// TaskFilter holds the optional listing filters supplied by the caller.
type TaskFilter struct {
	Status string
	Title  string
}

// UpdateTaskInput is a partial update. Status is always applied.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      domain.TaskStatus
}

// TaskService defines use-case operations for tasks. Operations that read
// tasks take the caller identity explicitly.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, caller *domain.Identity, filter TaskFilter) ([]domain.TaskView, error)
	Get(ctx context.Context, caller *domain.Identity, id string) (*domain.TaskView, error)
	Update(ctx context.Context, id string, in UpdateTaskInput) error
	Delete(ctx context.Context, id string) error
}
