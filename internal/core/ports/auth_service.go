package ports

import (
	"context"

	"github.com/99minutos/task-crm/internal/core/domain"
)

// RegisterInput carries the fields accepted on registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
