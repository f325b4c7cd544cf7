package handler

import "time"

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"required"`
	Contact int64  `json:"contact" validate:"required,gte=10"`
}

type createCustomerTaskRequest struct {
	Title             string     `json:"title" validate:"required"`
	Description       string     `json:"description" validate:"required"`
	CustomerName      string     `json:"customerName" validate:"required"`
	Status            string     `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	AssignedUserEmail string     `json:"assignedUserEmail" validate:"required,email"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
}
