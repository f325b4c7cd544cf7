package ports

import (
	"context"
	"time"

	"github.com/99minutos/task-crm/internal/core/domain"
)

// CreateCustomerInput carries the data needed to create a customer.
type CreateCustomerInput struct {
	Name    string
	Email   string
	Company string
	Contact int64
}

// CreateCustomerTaskInput creates a task bound to both a customer and a user.
type CreateCustomerTaskInput struct {
	Title             string
	Description       string
	CustomerName      string
	AssignedUserEmail string
	Status            domain.TaskStatus
	DueDate           *time.Time
}

type CustomerService interface {
	Create(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error)
	CreateTask(ctx context.Context, in CreateCustomerTaskInput) (*domain.Task, error)
	AssignTask(ctx context.Context, customerID, taskID string) (*domain.TaskView, error)
	List(ctx context.Context, nameContains string) ([]domain.Customer, error)
}
