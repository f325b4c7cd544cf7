package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-crm/internal/api/middleware"
	"github.com/99minutos/task-crm/internal/core/domain"
)

// caller returns the identity the gate attached to the request. It is nil on
// routes the gate did not authenticate; services reject a nil caller where
// one is needed.
func caller(c echo.Context) *domain.Identity {
	return middleware.IdentityFrom(c.Request().Context())
}
