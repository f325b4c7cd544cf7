package ports

import (
	"context"

	"github.com/99minutos/task-crm/internal/core/domain"
)

// CustomerRepository persists customers. Lookups return
// domain.ErrCustomerNotFound on a miss.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
	// List returns customers whose name contains nameContains, ignoring case.
	List(ctx context.Context, nameContains string) ([]domain.Customer, error)
}
