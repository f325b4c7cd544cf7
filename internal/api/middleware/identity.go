package middleware

import (
	"context"

	"github.com/99minutos/task-crm/internal/core/domain"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the caller identity.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by the gate, or nil.
func IdentityFrom(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return id
}
