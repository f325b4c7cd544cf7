package ports

import (
	"context"

	"github.com/99minutos/task-crm/internal/core/domain"
)

// UserRepository persists user accounts. FindByEmail returns
// domain.ErrUserNotFound on a miss and Create returns domain.ErrUserExists
// when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
