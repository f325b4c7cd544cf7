package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-crm/internal/api/metrics"
	"github.com/99minutos/task-crm/internal/api/response"
	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /task.
//
// @Summary      Create a task for a user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  response.Envelope{data=domain.Task}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		AssignedUserEmail: req.AssignedUserEmail,
		Status:            domain.TaskStatus(req.Status),
		DueDate:           req.DueDate,
	})
	if err != nil {
		return err
	}
	metrics.TasksCreatedTotal.WithLabelValues("task").Inc()

	return response.Success(c, http.StatusCreated, "Task created successfully", task)
}

// List handles GET /task. Non-admin callers only see tasks assigned to them.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status substring"
// @Param        title   query     string  false  "Title substring (case-sensitive)"
// @Success      200     {object}  response.Envelope{data=[]domain.TaskView}
// @Failure      401     {object}  response.Envelope
// @Router       /task [get]
func (h *TaskHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), caller(c), ports.TaskFilter{
		Status: c.QueryParam("status"),
		Title:  c.QueryParam("title"),
	})
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Tasks fetched successfully", views)
}

// Get handles GET /task/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  response.Envelope{data=domain.TaskView}
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /task/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Task fetched successfully", view)
}

// Update handles PUT /task/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /task/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	}); err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Task updated successfully", nil)
}

// Delete handles DELETE /task/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /task/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Task deleted successfully", nil)
}
