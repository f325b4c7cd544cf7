package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/task-crm/internal/core/ports"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	argon2idPrefix = "$argon2id$"
)

var (
	_ ports.PasswordHasher = (*BcryptHasher)(nil)
	_ ports.PasswordHasher = (*Argon2idHasher)(nil)
	_ ports.PasswordHasher = (*Hasher)(nil)
)

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (b *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func (b *BcryptHasher) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt verify: %w", err)
	}
}

// Argon2idHasher produces PHC-style encoded argon2id hashes:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
type Argon2idHasher struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *Argon2idHasher) Verify(encoded, password string) (bool, error) {
	params, salt, key, err := decodeArgon2id(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func decodeArgon2id(encoded string) (*Argon2idHasher, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != AlgorithmArgon2id {
		return nil, nil, nil, errors.New("argon2id: invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("argon2id: invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("argon2id: unsupported version %d", version)
	}

	params := &Argon2idHasher{}
	var p int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &p); err != nil {
		return nil, nil, nil, fmt.Errorf("argon2id: invalid parameters: %w", err)
	}
	params.Parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("argon2id: invalid salt encoding: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("argon2id: invalid key encoding: %w", err)
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}

// Hasher hashes new passwords with the configured algorithm and verifies
// stored hashes of either algorithm, so switching algorithms does not lock
// out existing accounts.
type Hasher struct {
	primary ports.PasswordHasher
	bcrypt  *BcryptHasher
	argon   *Argon2idHasher
}

// NewHasher returns a Hasher for algorithm ("bcrypt" or "argon2id").
func NewHasher(algorithm string, bcryptCost int) (*Hasher, error) {
	h := &Hasher{bcrypt: NewBcryptHasher(bcryptCost), argon: NewArgon2idHasher()}
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		h.primary = h.bcrypt
	case AlgorithmArgon2id:
		h.primary = h.argon
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", algorithm)
	}
	return h, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *Hasher) Verify(hash, password string) (bool, error) {
	if strings.HasPrefix(hash, argon2idPrefix) {
		return h.argon.Verify(hash, password)
	}
	return h.bcrypt.Verify(hash, password)
}
