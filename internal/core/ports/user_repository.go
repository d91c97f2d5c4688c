package ports

import (
	"context"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// UserRepository is the user directory backing authentication.
//
// FindByEmail and FindByID return domain.ErrUserNotFound when no record
// matches. Create returns domain.ErrDuplicateEmail when the store's unique
// constraint on email rejects the insert.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
