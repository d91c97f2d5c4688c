package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

// PageSize is the fixed number of employees per listing page.
const PageSize = 10

// MaxPage bounds the page number so the computed offset cannot overflow.
const MaxPage = 1_000_000

// AuditSink accepts audit entries for asynchronous persistence.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

type EmployeeService struct {
	repo   ports.EmployeeRepository
	audit  AuditSink
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, audit AuditSink, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, audit: audit, logger: logger}
}

func (s *EmployeeService) Create(ctx context.Context, actor domain.AuthContext, in ports.EmployeeInput) (*domain.Employee, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Employee{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		NationalID:   in.NationalID,
		Telephone:    in.Telephone,
		Email:        in.Email,
		Department:   in.Department,
		Position:     in.Position,
		Manufacturer: in.Manufacturer,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.record(actor, domain.AuditEmployeeCreated, created.ID)
	s.logger.Info().Str("employee_id", created.ID).Str("actor_id", actor.UserID).Msg("employee created")
	return created, nil
}

// List returns the requested 1-based page. Pages below 1 are treated as 1 and
// pages above MaxPage as MaxPage.
func (s *EmployeeService) List(ctx context.Context, page int) (*ports.EmployeePage, error) {
	page = min(max(page, 1), MaxPage)
	items, total, err := s.repo.List(ctx, int64((page-1)*PageSize), PageSize)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if items == nil {
		items = []*domain.Employee{}
	}

	return &ports.EmployeePage{
		Data:       items,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, actor domain.AuthContext, id string, patch ports.EmployeePatch) (*domain.Employee, error) {
	if patch.Empty() {
		return s.Get(ctx, id)
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	s.record(actor, domain.AuditEmployeeUpdated, id)
	s.logger.Info().Str("employee_id", id).Str("actor_id", actor.UserID).Msg("employee updated")
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, actor domain.AuthContext, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	s.record(actor, domain.AuditEmployeeDeleted, id)
	s.logger.Info().Str("employee_id", id).Str("actor_id", actor.UserID).Msg("employee deleted")
	return nil
}

func (s *EmployeeService) record(actor domain.AuthContext, action domain.AuditAction, employeeID string) {
	metrics.EmployeeMutationsTotal.WithLabelValues(string(action)).Inc()
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		Action:     action,
		Resource:   "employee",
		ResourceID: employeeID,
		At:         time.Now().UTC(),
	})
}
