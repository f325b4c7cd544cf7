package ports

// PasswordHasher is a one-way salted hash with constant-time verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}
