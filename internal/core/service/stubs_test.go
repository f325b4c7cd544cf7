package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by email
	lookups int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	copy.ID = strconv.Itoa(len(r.users) + 1)
	r.users[copy.Email] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.lookups++
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) byID(id string) *domain.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	users     *stubUserRepo
	customers *stubCustomerRepo
	nextID    int
	lastQuery *ports.TaskQuery
	findCalls int
}

func newStubTaskRepo(users *stubUserRepo, customers *stubCustomerRepo) *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task), users: users, customers: customers}
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *task
	clone.ID = strconv.Itoa(r.nextID)
	stored := clone
	r.tasks[clone.ID] = &stored
	return &clone, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.findCalls++
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) FindView(_ context.Context, id string) (*domain.TaskView, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	v := r.view(t)
	return &v, nil
}

// List applies the same filters the real repositories use.
func (r *stubTaskRepo) List(_ context.Context, q ports.TaskQuery) ([]domain.TaskView, error) {
	r.lastQuery = &q

	ids := make([]string, 0, len(r.tasks))
	for id := range r.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []domain.TaskView
	for _, id := range ids {
		t := r.tasks[id]
		if q.AssignedTo != "" && t.AssignedToID != q.AssignedTo {
			continue
		}
		if q.Status != "" && !strings.Contains(string(t.Status), q.Status) {
			continue
		}
		if q.Title != "" && !strings.Contains(t.Title, q.Title) {
			continue
		}
		out = append(out, r.view(t))
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, patch ports.TaskPatch) error {
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	t.Status = patch.Status
	return nil
}

func (r *stubTaskRepo) SetCustomer(_ context.Context, taskID, customerID string) error {
	t, ok := r.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.CustomerID = customerID
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) view(t *domain.Task) domain.TaskView {
	v := domain.TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Status:      t.Status,
		Description: t.Description,
		DueDate:     t.DueDate,
	}
	if u := r.users.byID(t.AssignedToID); u != nil {
		v.AssignedTo = &domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	if c, ok := r.customers.customers[t.CustomerID]; ok {
		v.Customer = c.Summary()
	}
	return v
}

type stubCustomerRepo struct {
	customers map[string]*domain.Customer
	findCalls int
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	clone := *c
	clone.ID = strconv.Itoa(len(r.customers) + 1)
	stored := clone
	r.customers[clone.ID] = &stored
	return &clone, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	r.findCalls++
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindByName(_ context.Context, name string) (*domain.Customer, error) {
	r.findCalls++
	for _, c := range r.customers {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, nameContains string) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(nameContains)) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// stubHasher is a reversible stand-in for a real password hash.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed$" + password, nil
}

func (stubHasher) Verify(hash, password string) (bool, error) {
	return hash == "hashed$"+password, nil
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func adminCaller() *domain.Identity {
	return &domain.Identity{Subject: "99", Email: "admin@example.com", Role: domain.RoleAdmin}
}

func userCaller(id string) *domain.Identity {
	return &domain.Identity{Subject: id, Email: "user" + id + "@example.com", Role: domain.RoleUser}
}
