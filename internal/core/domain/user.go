package domain

import (
	"context"
	"time"
)

// Role is the authorization level carried by a user account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User models an account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the sanitized projection returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// Public strips the hash and bookkeeping fields. The role is only included
// when withRole is set.
func (u *User) Public(withRole bool) PublicUser {
	p := PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
	if withRole {
		p.Role = u.Role
	}
	return p
}

// TokenClaims is the decoded content of a verified bearer token.
type TokenClaims struct {
	SubjectID string
	Role      Role
	ExpiresAt time.Time
}

// AuthContext is the identity resolved for a single request.
type AuthContext struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

type authContextKey struct{}

// WithAuthContext returns a copy of ctx carrying ac.
func WithAuthContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// AuthContextFrom extracts the identity attached by the authentication middleware.
func AuthContextFrom(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey{}).(AuthContext)
	return ac, ok
}
