package middleware

import (
	"github.com/99minutos/task-crm/internal/core/domain"
)

// Policy declares who may reach a route. A public policy skips token
// inspection entirely; an empty role set admits any authenticated caller.
type Policy struct {
	Public bool
	Roles  []domain.Role
}

// Public admits every request.
func Public() Policy {
	return Policy{Public: true}
}

// Authenticated admits any caller holding a valid token.
func Authenticated() Policy {
	return Policy{}
}

// RequireRoles admits authenticated callers whose role is one of roles.
func RequireRoles(roles ...domain.Role) Policy {
	return Policy{Roles: roles}
}

// Authorize decides whether identity satisfies p. It returns
// domain.ErrUnauthorized when an identity is required but missing and
// domain.ErrForbidden when the role is outside the allowed set.
func (p Policy) Authorize(identity *domain.Identity) error {
	if p.Public {
		return nil
	}
	if identity == nil || identity.Subject == "" {
		return domain.ErrUnauthorized
	}
	if len(p.Roles) == 0 {
		return nil
	}
	for _, r := range p.Roles {
		if identity.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
