package ports

import "github.com/99minutos/task-crm/internal/core/domain"

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier checks a session token's signature and expiry and decodes
// the caller identity it carries.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
