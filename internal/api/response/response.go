// Package response renders the JSON envelope shared by every API reply.
package response

import (
	"github.com/labstack/echo/v4"
)

const defaultMessage = "Request successful"

// Envelope is the body of every API response. StatusCode always mirrors the
// HTTP status.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	StatusCode int    `json:"statusCode"`
}

// Success writes a successful envelope. An empty message falls back to
// "Request successful".
func Success(c echo.Context, status int, message string, data any) error {
	if message == "" {
		message = defaultMessage
	}
	return c.JSON(status, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}

// Error writes a failed envelope with a null data field.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{
		Success:    false,
		Message:    message,
		StatusCode: status,
	})
}
