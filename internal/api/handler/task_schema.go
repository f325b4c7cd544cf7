package handler

import "time"

type createTaskRequest struct {
	Title             string     `json:"title" validate:"required"`
	Description       string     `json:"description" validate:"required"`
	AssignedUserEmail string     `json:"assignedUserEmail" validate:"required,email"`
	Status            string     `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
}

// updateTaskRequest leaves title and description untouched when omitted.
type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}
