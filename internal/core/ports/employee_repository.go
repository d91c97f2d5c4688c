package ports

import (
	"context"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// EmployeePatch holds the fields of a partial update. Nil means "leave as is".
type EmployeePatch struct {
	Firstname    *string
	Lastname     *string
	NationalID   *string
	Telephone    *string
	Email        *string
	Department   *string
	Position     *string
	Manufacturer *string
	Model        *string
	SerialNumber *string
}

// Empty reports whether the patch changes nothing.
func (p EmployeePatch) Empty() bool {
	return p.Firstname == nil && p.Lastname == nil && p.NationalID == nil &&
		p.Telephone == nil && p.Email == nil && p.Department == nil &&
		p.Position == nil && p.Manufacturer == nil && p.Model == nil &&
		p.SerialNumber == nil
}

// EmployeeRepository defines persistence for employee records.
// Create and Update return domain.ErrDuplicateNationalID on a unique index
// violation; lookups by id return domain.ErrEmployeeNotFound.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// List returns one page ordered by id, plus the total count.
	List(ctx context.Context, skip, limit int64) ([]*domain.Employee, int64, error)
	Update(ctx context.Context, id string, patch EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
