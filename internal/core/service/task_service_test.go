package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

type taskFixture struct {
	users     *stubUserRepo
	customers *stubCustomerRepo
	tasks     *stubTaskRepo
	svc       *TaskService
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	users := newStubUserRepo()
	customers := newStubCustomerRepo()
	tasks := newStubTaskRepo(users, customers)
	return &taskFixture{
		users:     users,
		customers: customers,
		tasks:     tasks,
		svc:       NewTaskService(tasks, users, discardLogger),
	}
}

func (f *taskFixture) addUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{Name: name, Email: email, PasswordHash: "x", Role: role})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (f *taskFixture) addTask(t *testing.T, title string, status domain.TaskStatus, email string) *domain.Task {
	t.Helper()
	task, err := f.svc.Create(context.Background(), ports.CreateTaskInput{
		Title:             title,
		Description:       title + " description",
		AssignedUserEmail: email,
		Status:            status,
	})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Success(t *testing.T) {
	f := newTaskFixture(t)
	user := f.addUser(t, "Test", "test@example.com", domain.RoleUser)

	before := time.Now().UTC()
	task := f.addTask(t, "Task 1", domain.StatusTodo, "test@example.com")

	if task.ID == "" || task.AssignedToID != user.ID {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.CustomerID != "" {
		t.Fatalf("customer must start unset, got %q", task.CustomerID)
	}
	if task.DueDate.Before(before) {
		t.Fatalf("due date should default to creation time, got %v", task.DueDate)
	}
}

func TestTaskService_Create_ExplicitDueDate(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Test", "test@example.com", domain.RoleUser)
	due := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	task, err := f.svc.Create(context.Background(), ports.CreateTaskInput{
		Title: "t", Description: "d", AssignedUserEmail: "test@example.com", Status: domain.StatusDone, DueDate: &due,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !task.DueDate.Equal(due) {
		t.Fatalf("expected due %v, got %v", due, task.DueDate)
	}
}

func TestTaskService_Create_UserNotFound(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.Create(context.Background(), ports.CreateTaskInput{
		Title: "t", Description: "d", AssignedUserEmail: "ghost@example.com", Status: domain.StatusTodo,
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(f.tasks.tasks) != 0 {
		t.Fatalf("no task must be persisted, found %d", len(f.tasks.tasks))
	}
}

func TestTaskService_Create_InvalidStatus(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Test", "test@example.com", domain.RoleUser)

	_, err := f.svc.Create(context.Background(), ports.CreateTaskInput{
		Title: "t", Description: "d", AssignedUserEmail: "test@example.com", Status: "BLOCKED",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / Get
// ---------------------------------------------------------------------------

func TestTaskService_List_RequiresIdentity(t *testing.T) {
	f := newTaskFixture(t)

	if _, err := f.svc.List(context.Background(), nil, ports.TaskFilter{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.tasks.lastQuery != nil {
		t.Fatalf("repository must not be queried without identity")
	}
}

func TestTaskService_List_UserSeesOnlyOwnTasks(t *testing.T) {
	f := newTaskFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com", domain.RoleUser)
	f.addUser(t, "Bob", "bob@example.com", domain.RoleUser)
	f.addTask(t, "alice 1", domain.StatusTodo, "alice@example.com")
	f.addTask(t, "bob 1", domain.StatusTodo, "bob@example.com")
	f.addTask(t, "alice 2", domain.StatusDone, "alice@example.com")

	views, err := f.svc.List(context.Background(), userCaller(alice.ID), ports.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(views))
	}
	for _, v := range views {
		if v.AssignedTo == nil || v.AssignedTo.ID != alice.ID {
			t.Fatalf("task %s leaked to another user: %+v", v.ID, v.AssignedTo)
		}
	}
}

func TestTaskService_List_AdminSeesAll(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Alice", "alice@example.com", domain.RoleUser)
	f.addUser(t, "Bob", "bob@example.com", domain.RoleUser)
	f.addTask(t, "alice 1", domain.StatusTodo, "alice@example.com")
	f.addTask(t, "bob 1", domain.StatusTodo, "bob@example.com")

	views, err := f.svc.List(context.Background(), adminCaller(), ports.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(views))
	}
	if f.tasks.lastQuery.AssignedTo != "" {
		t.Fatalf("admin query must not be scoped, got %+v", f.tasks.lastQuery)
	}
}

func TestTaskService_List_Filters(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Alice", "alice@example.com", domain.RoleUser)
	f.addTask(t, "Write report", domain.StatusInProgress, "alice@example.com")
	f.addTask(t, "write tests", domain.StatusInProgress, "alice@example.com")
	f.addTask(t, "Write docs", domain.StatusDone, "alice@example.com")

	views, err := f.svc.List(context.Background(), adminCaller(), ports.TaskFilter{Status: "PROGRESS", Title: "Write"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Write report" {
		t.Fatalf("unexpected result: %+v", views)
	}
}

func TestTaskService_List_EmptyIsNotNil(t *testing.T) {
	f := newTaskFixture(t)

	views, err := f.svc.List(context.Background(), userCaller("1"), ports.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty slice, got %#v", views)
	}
}

func TestTaskService_Get(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Alice", "alice@example.com", domain.RoleUser)
	task := f.addTask(t, "Task 1", domain.StatusTodo, "alice@example.com")

	view, err := f.svc.Get(context.Background(), adminCaller(), task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Title != "Task 1" || view.AssignedTo == nil || view.AssignedTo.Email != "alice@example.com" {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, err := f.svc.Get(context.Background(), adminCaller(), "404"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), nil, task.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestTaskService_Update_PartialMerge(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Alice", "alice@example.com", domain.RoleUser)
	task := f.addTask(t, "Task 1", domain.StatusTodo, "alice@example.com")

	title := "Task 2"
	if err := f.svc.Update(context.Background(), task.ID, ports.UpdateTaskInput{Title: &title, Status: domain.StatusDone}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := f.tasks.tasks[task.ID]
	if stored.Title != "Task 2" || stored.Status != domain.StatusDone {
		t.Fatalf("update not applied: %+v", stored)
	}
	if stored.Description != "Task 1 description" {
		t.Fatalf("omitted description must be untouched, got %q", stored.Description)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	f := newTaskFixture(t)

	err := f.svc.Update(context.Background(), "404", ports.UpdateTaskInput{Status: domain.StatusDone})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	f := newTaskFixture(t)
	f.addUser(t, "Alice", "alice@example.com", domain.RoleUser)
	task := f.addTask(t, "Task 1", domain.StatusTodo, "alice@example.com")

	if err := f.svc.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.tasks.tasks[task.ID]; ok {
		t.Fatalf("task still present after delete")
	}
	if err := f.svc.Delete(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
