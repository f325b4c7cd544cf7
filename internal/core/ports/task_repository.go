package ports

import (
	"context"

	"github.com/99minutos/task-crm/internal/core/domain"
)

// TaskQuery is the storage-neutral form of a task listing. Every non-empty
// field narrows the result conjunctively.
type TaskQuery struct {
	// AssignedTo restricts results to tasks assigned to this user id.
	AssignedTo string
	// Status matches tasks whose status contains this substring.
	Status string
	// Title matches tasks whose title contains this substring (case-sensitive).
	Title string
}

// TaskPatch lists the editable fields of a task. Nil pointers are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      domain.TaskStatus
}

// TaskRepository persists tasks. Lookups return domain.ErrTaskNotFound on a miss.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindView(ctx context.Context, id string) (*domain.TaskView, error)
	List(ctx context.Context, q TaskQuery) ([]domain.TaskView, error)
	Update(ctx context.Context, id string, patch TaskPatch) error
	SetCustomer(ctx context.Context, taskID, customerID string) error
	Delete(ctx context.Context, id string) error
}
