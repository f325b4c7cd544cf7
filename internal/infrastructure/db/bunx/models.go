package bunx

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/uptrace/bun"

	"github.com/99minutos/task-crm/internal/core/domain"
)

type userModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull,default:'USER'"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           formatID(m.ID),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type customerModel struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull"`
	Company   string    `bun:"company,notnull"`
	Contact   int64     `bun:"contact,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *customerModel) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:        formatID(m.ID),
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		Contact:   m.Contact,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type taskModel struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID           int64         `bun:"id,pk,autoincrement"`
	Title        string        `bun:"title,notnull"`
	Description  string        `bun:"description,notnull"`
	Status       string        `bun:"status,notnull,default:'TODO'"`
	DueDate      time.Time     `bun:"due_date,notnull,default:current_timestamp"`
	AssignedToID int64         `bun:"assigned_to_id,notnull"`
	CustomerID   sql.NullInt64 `bun:"customer_id"`
	CreatedAt    time.Time     `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time     `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *taskModel) toDomain() *domain.Task {
	t := &domain.Task{
		ID:           formatID(m.ID),
		Title:        m.Title,
		Description:  m.Description,
		Status:       domain.TaskStatus(m.Status),
		DueDate:      m.DueDate.UTC(),
		AssignedToID: formatID(m.AssignedToID),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	if m.CustomerID.Valid {
		t.CustomerID = formatID(m.CustomerID.Int64)
	}
	return t
}

// taskViewRow is one row of the task/assignee/customer join.
type taskViewRow struct {
	ID          int64     `bun:"id"`
	Title       string    `bun:"title"`
	Status      string    `bun:"status"`
	Description string    `bun:"description"`
	DueDate     time.Time `bun:"due_date"`

	UserID    sql.NullInt64  `bun:"user_id"`
	UserName  sql.NullString `bun:"user_name"`
	UserEmail sql.NullString `bun:"user_email"`
	UserRole  sql.NullString `bun:"user_role"`

	CustomerID      sql.NullInt64  `bun:"customer_id"`
	CustomerName    sql.NullString `bun:"customer_name"`
	CustomerEmail   sql.NullString `bun:"customer_email"`
	CustomerCompany sql.NullString `bun:"customer_company"`
	CustomerContact sql.NullInt64  `bun:"customer_contact"`
}

func (r taskViewRow) toDomain() domain.TaskView {
	v := domain.TaskView{
		ID:          formatID(r.ID),
		Title:       r.Title,
		Status:      domain.TaskStatus(r.Status),
		Description: r.Description,
		DueDate:     r.DueDate.UTC(),
	}
	if r.UserID.Valid {
		v.AssignedTo = &domain.UserSummary{
			ID:    formatID(r.UserID.Int64),
			Name:  r.UserName.String,
			Email: r.UserEmail.String,
			Role:  domain.Role(r.UserRole.String),
		}
	}
	if r.CustomerID.Valid {
		v.Customer = &domain.CustomerSummary{
			ID:      formatID(r.CustomerID.Int64),
			Name:    r.CustomerName.String,
			Email:   r.CustomerEmail.String,
			Company: r.CustomerCompany.String,
			Contact: r.CustomerContact.Int64,
		}
	}
	return v
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID converts an API id into a primary key. ok is false for anything
// that cannot name a row.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
