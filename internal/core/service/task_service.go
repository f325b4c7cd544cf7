package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

type TaskService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, log: log}
}

// Create binds a new task to the user owning AssignedUserEmail. Nothing is
// persisted when that user does not exist.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	if !in.Status.Valid() {
		return nil, domain.NewValidationError("status must be one of: TODO IN_PROGRESS DONE")
	}

	user, err := s.users.FindByEmail(ctx, in.AssignedUserEmail)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, newTask(in.Title, in.Description, in.Status, in.DueDate, user.ID, ""))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("assigned_to", user.ID).Msg("task created")
	return task, nil
}

func (s *TaskService) List(ctx context.Context, caller *domain.Identity, filter ports.TaskFilter) ([]domain.TaskView, error) {
	q, err := BuildTaskQuery(caller, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.tasks.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []domain.TaskView{}
	}
	return views, nil
}

func (s *TaskService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.TaskView, error) {
	if caller == nil || caller.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.tasks.FindView(ctx, id)
}

// Update applies a partial update. Unknown ids fail with domain.ErrTaskNotFound.
func (s *TaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput) error {
	if !in.Status.Valid() {
		return domain.NewValidationError("status must be one of: TODO IN_PROGRESS DONE")
	}

	if err := s.tasks.Update(ctx, id, ports.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
	}); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Str("status", string(in.Status)).Msg("task updated")
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func newTask(title, description string, status domain.TaskStatus, due *time.Time, userID, customerID string) *domain.Task {
	now := time.Now().UTC()
	dueDate := now
	if due != nil && !due.IsZero() {
		dueDate = due.UTC()
	}
	if status == "" {
		status = domain.StatusTodo
	}
	return &domain.Task{
		Title:        title,
		Description:  description,
		Status:       status,
		DueDate:      dueDate,
		AssignedToID: userID,
		CustomerID:   customerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
