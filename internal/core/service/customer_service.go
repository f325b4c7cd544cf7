package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

type CustomerService struct {
	customers ports.CustomerRepository
	tasks     ports.TaskRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewCustomerService(
	customers ports.CustomerRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *CustomerService {
	return &CustomerService{customers: customers, tasks: tasks, users: users, log: log}
}

func (s *CustomerService) Create(ctx context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	now := time.Now().UTC()
	created, err := s.customers.Create(ctx, &domain.Customer{
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		Contact:   in.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("customer_id", created.ID).Msg("customer created")
	return created, nil
}

// CreateTask creates a task bound to the customer named CustomerName and the
// user owning AssignedUserEmail. The customer is resolved first.
func (s *CustomerService) CreateTask(ctx context.Context, in ports.CreateCustomerTaskInput) (*domain.Task, error) {
	if !in.Status.Valid() {
		return nil, domain.NewValidationError("status must be one of: TODO IN_PROGRESS DONE")
	}

	customer, err := s.customers.FindByName(ctx, in.CustomerName)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, in.AssignedUserEmail)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, newTask(in.Title, in.Description, in.Status, in.DueDate, user.ID, customer.ID))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("customer_id", customer.ID).Msg("customer task created")
	return task, nil
}

// AssignTask links an existing task to an existing customer. The task is
// resolved before the customer so a missing task never triggers a customer lookup.
func (s *CustomerService) AssignTask(ctx context.Context, customerID, taskID string) (*domain.TaskView, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	if err := s.tasks.SetCustomer(ctx, taskID, customerID); err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", taskID).Str("customer_id", customerID).Msg("task assigned to customer")
	return s.tasks.FindView(ctx, taskID)
}

func (s *CustomerService) List(ctx context.Context, nameContains string) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx, nameContains)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}
