package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-crm/internal/api/metrics"
	"github.com/99minutos/task-crm/internal/api/response"
	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customers and their tasks.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /customer.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  response.Envelope{data=domain.Customer}
// @Failure      400   {object}  response.Envelope
// @Router       /customer [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.service.Create(c.Request().Context(), ports.CreateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Contact: req.Contact,
	})
	if err != nil {
		return err
	}
	metrics.CustomersCreatedTotal.Inc()

	return response.Success(c, http.StatusCreated, "Customer created successfully", customer)
}

// CreateTask handles POST /customer/create-task.
//
// @Summary      Create a task bound to a customer and a user
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerTaskRequest  true  "Task details"
// @Success      201   {object}  response.Envelope{data=domain.Task}
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /customer/create-task [post]
func (h *CustomerHandler) CreateTask(c echo.Context) error {
	var req createCustomerTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateCustomerTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		CustomerName:      req.CustomerName,
		AssignedUserEmail: req.AssignedUserEmail,
		Status:            domain.TaskStatus(req.Status),
		DueDate:           req.DueDate,
	})
	if err != nil {
		return err
	}
	metrics.TasksCreatedTotal.WithLabelValues("customer").Inc()

	return response.Success(c, http.StatusCreated, "Customer task created successfully", task)
}

// AssignTask handles PUT /customer/assign-task/:customerId/:taskId.
//
// @Summary      Attach a task to a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  path      string  true  "Customer id"
// @Param        taskId      path      string  true  "Task id"
// @Success      200         {object}  response.Envelope{data=domain.TaskView}
// @Failure      404         {object}  response.Envelope
// @Router       /customer/assign-task/{customerId}/{taskId} [put]
func (h *CustomerHandler) AssignTask(c echo.Context) error {
	view, err := h.service.AssignTask(c.Request().Context(), c.Param("customerId"), c.Param("taskId"))
	if err != nil {
		return err
	}
	metrics.TasksAssignedTotal.Inc()

	return response.Success(c, http.StatusOK, "Task assigned to customer successfully", view)
}

// List handles GET /customer. Admin only.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        customerName  query     string  false  "Name substring (case-insensitive)"
// @Success      200           {object}  response.Envelope{data=[]domain.Customer}
// @Failure      401           {object}  response.Envelope
// @Failure      403           {object}  response.Envelope
// @Router       /customer [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.service.List(c.Request().Context(), c.QueryParam("customerName"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Customers fetched successfully", customers)
}
