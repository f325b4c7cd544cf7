package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger

	// decoy is checked for unknown emails so both rejection paths pay one
	// hash verification.
	decoyOnce sync.Once
	decoy     string
}

const decoyPassword = "taskcrm-decoy-password"

// NewAuthService wires the auth use cases. limiter may be nil to disable
// login throttling.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.NewValidationError("name is required")
	case in.Email == "":
		return nil, domain.NewValidationError("email is required")
	case in.Password == "":
		return nil, domain.NewValidationError("password is required")
	case !in.Role.Valid():
		return nil, domain.NewValidationError("role must be one of: ADMIN USER")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login returns a signed session token. Unknown email and wrong password both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, strings.ToLower(email))
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !allowed {
			s.log.Warn().Str("email", email).Msg("login throttled")
			return "", domain.ErrTooManyRequests
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.verifyDecoy(password)
			s.log.Warn().Str("email", email).Str("reason", "unknown_email").Msg("login rejected")
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Warn().Str("email", email).Str("reason", "bad_password").Msg("login rejected")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) verifyDecoy(password string) {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash(decoyPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("hash decoy password")
			return
		}
		s.decoy = hash
	})
	if s.decoy != "" {
		_, _ = s.hasher.Verify(s.decoy, password)
	}
}
