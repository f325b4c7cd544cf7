package bunx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

type TaskRepository struct {
	db bun.IDB
}

func NewTaskRepository(db bun.IDB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	assignee, ok := parseID(task.AssignedToID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	m := &taskModel{
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		DueDate:      task.DueDate,
		AssignedToID: assignee,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
	if task.CustomerID != "" {
		customer, ok := parseID(task.CustomerID)
		if !ok {
			return nil, domain.ErrCustomerNotFound
		}
		m.CustomerID = sql.NullInt64{Int64: customer, Valid: true}
	}

	if _, err := r.db.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return m.toDomain(), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	m := new(taskModel)
	if err := r.db.NewSelect().Model(m).Where("id = ?", pk).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return m.toDomain(), nil
}

// selectViews joins the assignee and customer onto tasks and selects the
// reduced projection. The password hash is never selected.
func (r *TaskRepository) selectViews() *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("tasks AS t").
		ColumnExpr("t.id, t.title, t.status, t.description, t.due_date").
		ColumnExpr("u.id AS user_id, u.name AS user_name, u.email AS user_email, u.role AS user_role").
		ColumnExpr("c.id AS customer_id, c.name AS customer_name, c.email AS customer_email").
		ColumnExpr("c.company AS customer_company, c.contact AS customer_contact").
		Join("LEFT JOIN users AS u ON u.id = t.assigned_to_id").
		Join("LEFT JOIN customers AS c ON c.id = t.customer_id").
		OrderExpr("t.id ASC")
}

func (r *TaskRepository) FindView(ctx context.Context, id string) (*domain.TaskView, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var rows []taskViewRow
	if err := r.selectViews().Where("t.id = ?", pk).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("find task view: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrTaskNotFound
	}
	v := rows[0].toDomain()
	return &v, nil
}

func (r *TaskRepository) List(ctx context.Context, q ports.TaskQuery) ([]domain.TaskView, error) {
	query := r.selectViews()
	if q.AssignedTo != "" {
		pk, ok := parseID(q.AssignedTo)
		if !ok {
			return []domain.TaskView{}, nil
		}
		query = query.Where("t.assigned_to_id = ?", pk)
	}
	if q.Status != "" {
		query = query.Where(containsExpr(r.db, "t.status"), q.Status)
	}
	if q.Title != "" {
		query = query.Where(containsExpr(r.db, "t.title"), q.Title)
	}

	var rows []taskViewRow
	if err := query.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	views := make([]domain.TaskView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toDomain())
	}
	return views, nil
}

// Update applies patch in a single statement and reports
// domain.ErrTaskNotFound when no row matched.
func (r *TaskRepository) Update(ctx context.Context, id string, patch ports.TaskPatch) error {
	pk, ok := parseID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}

	q := r.db.NewUpdate().
		Model((*taskModel)(nil)).
		Set("status = ?", string(patch.Status)).
		Set("updated_at = ?", time.Now().UTC())
	if patch.Title != nil {
		q = q.Set("title = ?", *patch.Title)
	}
	if patch.Description != nil {
		q = q.Set("description = ?", *patch.Description)
	}

	return expectRow(q.Where("id = ?", pk).Exec(ctx))
}

func (r *TaskRepository) SetCustomer(ctx context.Context, taskID, customerID string) error {
	pk, ok := parseID(taskID)
	if !ok {
		return domain.ErrTaskNotFound
	}
	customer, ok := parseID(customerID)
	if !ok {
		return domain.ErrCustomerNotFound
	}

	return expectRow(r.db.NewUpdate().
		Model((*taskModel)(nil)).
		Set("customer_id = ?", customer).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", pk).
		Exec(ctx))
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	pk, ok := parseID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}
	return expectRow(r.db.NewDelete().Model((*taskModel)(nil)).Where("id = ?", pk).Exec(ctx))
}

func expectRow(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("write task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
