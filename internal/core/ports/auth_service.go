package ports

import (
	"context"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// RegisterInput carries a signup request. Field names in validation errors
// follow the json tags.
type RegisterInput struct {
	Name            string `json:"name"            validate:"omitempty,min=2,max=100"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6,max=16,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role"            validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  domain.PublicUser
}

// AuthService exposes the registration and login flows and the identity
// lookup used by the authentication middleware.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ResolveIdentity(ctx context.Context, claims domain.TokenClaims) (domain.AuthContext, error)
}

// PasswordHasher is a one-way credential transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never fails on a malformed hash; it returns false instead.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, error)
}

// TokenVerifier checks signature and expiry in one step. Every failure is
// reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.TokenClaims, error)
}
