package domain

// Identity is the decoded caller attached to a request by the access gate.
type Identity struct {
	Subject string
	Email   string
	Role    Role
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
