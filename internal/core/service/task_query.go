package service

import (
	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

// BuildTaskQuery derives the role-scoped listing query for caller. ADMIN
// callers see every task; anyone else only sees tasks assigned to them.
// A nil caller means the access gate never attached an identity.
func BuildTaskQuery(caller *domain.Identity, filter ports.TaskFilter) (ports.TaskQuery, error) {
	if caller == nil || caller.Subject == "" {
		return ports.TaskQuery{}, domain.ErrUnauthorized
	}

	q := ports.TaskQuery{
		Status: filter.Status,
		Title:  filter.Title,
	}
	if !caller.IsAdmin() {
		q.AssignedTo = caller.Subject
	}
	return q, nil
}
