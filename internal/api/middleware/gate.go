package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-crm/internal/api/metrics"
	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

const bearerPrefix = "bearer"

// Gate authenticates the request against verifier and enforces policy. On
// success the decoded identity is attached to the request context, where
// handlers read it with IdentityFrom.
func Gate(verifier ports.TokenVerifier, policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if policy.Public {
				return next(c)
			}

			token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return deny(domain.ErrUnauthorized)
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				return deny(domain.ErrUnauthorized)
			}

			if err := policy.Authorize(identity); err != nil {
				return deny(err)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}

// BearerToken extracts the token from an Authorization header value. The
// "bearer" scheme is matched case-insensitively and may be omitted.
func BearerToken(header string) (string, bool) {
	token := strings.TrimSpace(header)
	if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}
	if token == "" {
		return "", false
	}
	return token, true
}

func deny(err error) error {
	reason := "unauthorized"
	if errors.Is(err, domain.ErrForbidden) {
		reason = "forbidden"
	}
	metrics.GateDenialsTotal.WithLabelValues(reason).Inc()
	return err
}
