package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/99minutos/task-crm/internal/api/middleware"
	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

type stubTaskService struct {
	created    ports.CreateTaskInput
	listCaller *domain.Identity
	listFilter ports.TaskFilter
	updatedID  string
	updated    ports.UpdateTaskInput
	err        error
}

func (s *stubTaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Task{ID: "1", Title: in.Title, Status: in.Status}, nil
}

func (s *stubTaskService) List(ctx context.Context, caller *domain.Identity, filter ports.TaskFilter) ([]domain.TaskView, error) {
	s.listCaller = caller
	s.listFilter = filter
	return []domain.TaskView{}, s.err
}

func (s *stubTaskService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.TaskView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TaskView{ID: id, Title: "Task"}, nil
}

func (s *stubTaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput) error {
	s.updatedID = id
	s.updated = in
	return s.err
}

func (s *stubTaskService) Delete(ctx context.Context, id string) error {
	return s.err
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/task",
		`{"title":"Task 1","description":"Desc","assignedUserEmail":"john@example.com","status":"TODO","dueDate":"2026-01-02T15:04:05Z"}`)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.created.AssignedUserEmail != "john@example.com" || stub.created.Status != domain.StatusTodo {
		t.Fatalf("unexpected input: %+v", stub.created)
	}
	want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if stub.created.DueDate == nil || !stub.created.DueDate.Equal(want) {
		t.Fatalf("unexpected due date: %v", stub.created.DueDate)
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Task created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := newJSONContext(http.MethodPost, "/task",
		`{"title":"Task 1","description":"Desc","assignedUserEmail":"john@example.com","status":"BLOCKED"}`)

	err := handler.Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "status must be one of: TODO IN_PROGRESS DONE" {
		t.Fatalf("unexpected message: %q", ve.Message)
	}
}

func TestTaskHandler_Create_UserNotFound(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{err: domain.ErrUserNotFound})

	c, _ := newJSONContext(http.MethodPost, "/task",
		`{"title":"Task 1","description":"Desc","assignedUserEmail":"ghost@example.com","status":"TODO"}`)

	if err := handler.Create(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTaskHandler_List_PassesCallerAndFilters(t *testing.T) {
	stub := &stubTaskService{}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/task?status=DONE&title=Rep", "")
	id := &domain.Identity{Subject: "7", Role: domain.RoleUser}
	c.SetRequest(c.Request().WithContext(middleware.WithIdentity(c.Request().Context(), id)))

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.listCaller != id {
		t.Fatalf("caller not passed through: %+v", stub.listCaller)
	}
	if stub.listFilter != (ports.TaskFilter{Status: "DONE", Title: "Rep"}) {
		t.Fatalf("unexpected filter: %+v", stub.listFilter)
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 0 {
		t.Fatalf("expected empty list, got %+v", resp["data"])
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{err: domain.ErrTaskNotFound})

	c, _ := newJSONContext(http.MethodGet, "/task/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := handler.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Update_Partial(t *testing.T) {
	stub := &stubTaskService{}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(http.MethodPut, "/task/3", `{"title":"New title","status":"DONE"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.updatedID != "3" {
		t.Fatalf("unexpected id %q", stub.updatedID)
	}
	if stub.updated.Title == nil || *stub.updated.Title != "New title" {
		t.Fatalf("title not passed: %+v", stub.updated)
	}
	if stub.updated.Description != nil {
		t.Fatalf("omitted description should stay nil")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_StatusRequired(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := newJSONContext(http.MethodPut, "/task/3", `{"title":"New title"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, rec := newJSONContext(http.MethodDelete, "/task/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Task deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}
