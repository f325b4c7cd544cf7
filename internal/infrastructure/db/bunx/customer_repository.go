package bunx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/99minutos/task-crm/internal/core/domain"
)

type CustomerRepository struct {
	db bun.IDB
}

func NewCustomerRepository(db bun.IDB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	m := &customerModel{
		Name:      c.Name,
		Email:     c.Email,
		Company:   c.Company,
		Contact:   c.Contact,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if _, err := r.db.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return r.findOne(ctx, "id = ?", pk)
}

func (r *CustomerRepository) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *CustomerRepository) findOne(ctx context.Context, where string, arg any) (*domain.Customer, error) {
	m := new(customerModel)
	if err := r.db.NewSelect().Model(m).Where(where, arg).OrderExpr("id ASC").Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return m.toDomain(), nil
}

// List matches nameContains anywhere in the name, ignoring case.
func (r *CustomerRepository) List(ctx context.Context, nameContains string) ([]domain.Customer, error) {
	var models []customerModel
	q := r.db.NewSelect().Model(&models).OrderExpr("id ASC")
	if nameContains != "" {
		q = q.Where(containsExpr(r.db, lowerExpr(r.db, "name")), strings.ToLower(nameContains))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	out := make([]domain.Customer, 0, len(models))
	for i := range models {
		out = append(out, *models[i].toDomain())
	}
	return out, nil
}
