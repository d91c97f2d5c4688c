package ports

import (
	"context"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// EmployeeInput carries the data needed to create an employee.
type EmployeeInput struct {
	Firstname    string
	Lastname     string
	NationalID   string
	Telephone    string
	Email        string
	Department   string
	Position     string
	Manufacturer string
	Model        string
	SerialNumber string
}

// EmployeePage is one page of the employee listing.
type EmployeePage struct {
	Data       []*domain.Employee
	Page       int
	PageSize   int
	TotalPages int
}

// EmployeeService defines use-case operations for employees. Mutations take
// the acting identity so they can be audited.
type EmployeeService interface {
	Create(ctx context.Context, actor domain.AuthContext, input EmployeeInput) (*domain.Employee, error)
	List(ctx context.Context, page int) (*EmployeePage, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Update(ctx context.Context, actor domain.AuthContext, id string, patch EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, actor domain.AuthContext, id string) error
}

// AuditService records audit entries. It is driven by the audit dispatcher.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
