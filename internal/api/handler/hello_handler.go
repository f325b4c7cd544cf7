package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-crm/internal/api/response"
)

// Hello handles GET /hello-world.
//
// @Summary      Greeting
// @Tags         misc
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /hello-world [get]
func Hello(c echo.Context) error {
	return response.Success(c, http.StatusOK, "Hello World!", nil)
}
