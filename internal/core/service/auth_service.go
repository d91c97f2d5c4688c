package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
	"github.com/staffhub/employee-api/internal/pkg/validation"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthOptions tunes registration and login policy.
type AuthOptions struct {
	// AllowSignupRole lets a signup request pick its own role.
	// When false only EMPLOYEE (or no role) is accepted.
	AllowSignupRole bool
	// Throttle is optional; nil disables login throttling.
	Throttle LoginThrottle
}

// AuthService implements registration, login and identity resolution.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	validate *validator.Validate
	opts     AuthOptions
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validation.New(),
		opts:     opts,
		log:      log,
	}
}

// Register validates the input, rejects known emails, hashes the password and
// stores the user. A duplicate reported by the store is treated exactly like
// one found by the lookup.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.PublicUser, error) {
	if err := s.validateRegistration(in); err != nil {
		metrics.AuthSignupsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		metrics.AuthSignupsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		metrics.AuthSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		metrics.AuthSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	role := domain.RoleEmployee
	if in.Role != "" {
		role = domain.Role(in.Role)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.AuthSignupsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrDuplicateEmail
		}
		metrics.AuthSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	metrics.AuthSignupsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	pub := created.Public(false)
	return &pub, nil
}

func (s *AuthService) validateRegistration(in ports.RegisterInput) error {
	verr := &domain.ValidationError{}
	if err := validation.Struct(s.validate, in); err != nil {
		if !errors.As(err, &verr) {
			return fmt.Errorf("register: validate: %w", err)
		}
	}
	if !s.opts.AllowSignupRole && in.Role != "" && in.Role != string(domain.RoleEmployee) && !verr.Has("role") {
		verr.Add("role", "role cannot be chosen at signup")
	}
	return verr.OrNil()
}

// Login checks the credentials and issues a token for the user's id.
// An unknown email is reported as domain.ErrUserNotFound, distinct from a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.throttled(ctx, email) {
		metrics.AuthLoginsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthLoginsTotal.WithLabelValues("not_found").Inc()
			return nil, domain.ErrUserNotFound
		}
		metrics.AuthLoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		metrics.AuthLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.AuthLoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	s.resetThrottle(ctx, email)
	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{Token: token, User: user.Public(true)}, nil
}

// ResolveIdentity re-reads the token subject from the directory so the live
// role is used. A subject that no longer exists is unauthenticated.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims domain.TokenClaims) (domain.AuthContext, error) {
	user, err := s.users.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthContext{}, domain.ErrUnauthenticated
		}
		return domain.AuthContext{}, fmt.Errorf("resolve identity: %w", err)
	}
	return domain.AuthContext{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.opts.Throttle == nil {
		return false
	}
	blocked, err := s.opts.Throttle.Blocked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.opts.Throttle == nil {
		return
	}
	if err := s.opts.Throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) resetThrottle(ctx context.Context, email string) {
	if s.opts.Throttle == nil {
		return
	}
	if err := s.opts.Throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login throttle")
	}
}
