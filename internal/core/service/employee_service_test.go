package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

type stubEmployeeRepo struct {
	created   *domain.Employee
	listSkip  int64
	listLimit int64
	total     int64
	items     []*domain.Employee
	err       error
	deleted   string
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if r.err != nil {
		return nil, r.err
	}
	c := *e
	c.ID = "e1"
	r.created = &c
	return &c, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Employee{ID: id}, nil
}

func (r *stubEmployeeRepo) List(_ context.Context, skip, limit int64) ([]*domain.Employee, int64, error) {
	r.listSkip, r.listLimit = skip, limit
	return r.items, r.total, r.err
}

func (r *stubEmployeeRepo) Update(_ context.Context, id string, patch ports.EmployeePatch) (*domain.Employee, error) {
	if r.err != nil {
		return nil, r.err
	}
	e := &domain.Employee{ID: id}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
	return e, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = id
	return nil
}

type recordingSink struct {
	entries []domain.AuditEntry
}

func (s *recordingSink) Enqueue(entry domain.AuditEntry) {
	s.entries = append(s.entries, entry)
}

var admin = domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin}

func TestEmployeeService_Create_Audits(t *testing.T) {
	repo := &stubEmployeeRepo{}
	sink := &recordingSink{}
	svc := NewEmployeeService(repo, sink, zerolog.Nop())

	e, err := svc.Create(context.Background(), admin, ports.EmployeeInput{Firstname: "Ann", NationalID: "N1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if e.ID != "e1" || repo.created.CreatedAt.IsZero() {
		t.Fatalf("unexpected employee: %+v", e)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(sink.entries))
	}
	got := sink.entries[0]
	if got.ActorID != "admin-1" || got.Action != domain.AuditEmployeeCreated || got.ResourceID != "e1" {
		t.Fatalf("unexpected audit entry: %+v", got)
	}
}

func TestEmployeeService_Create_DuplicateNationalID(t *testing.T) {
	repo := &stubEmployeeRepo{err: domain.ErrDuplicateNationalID}
	sink := &recordingSink{}
	svc := NewEmployeeService(repo, sink, zerolog.Nop())

	if _, err := svc.Create(context.Background(), admin, ports.EmployeeInput{}); !errors.Is(err, domain.ErrDuplicateNationalID) {
		t.Fatalf("expected ErrDuplicateNationalID, got %v", err)
	}
	if len(sink.entries) != 0 {
		t.Fatalf("failed mutation must not be audited")
	}
}

func TestEmployeeService_List_Pagination(t *testing.T) {
	repo := &stubEmployeeRepo{total: 21}
	svc := NewEmployeeService(repo, nil, zerolog.Nop())

	page, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.listSkip != 20 || repo.listLimit != PageSize {
		t.Fatalf("unexpected skip/limit: %d/%d", repo.listSkip, repo.listLimit)
	}
	if page.Page != 3 || page.PageSize != 10 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Data == nil {
		t.Fatalf("expected empty slice, got nil")
	}

	page, _ = svc.List(context.Background(), 0)
	if page.Page != 1 || repo.listSkip != 0 {
		t.Fatalf("page below 1 should clamp to 1, got %+v", page)
	}

	page, _ = svc.List(context.Background(), math.MaxInt)
	if page.Page != MaxPage || repo.listSkip != int64(MaxPage-1)*PageSize {
		t.Fatalf("huge page should clamp to MaxPage, got page %d skip %d", page.Page, repo.listSkip)
	}
}

func TestEmployeeService_Update(t *testing.T) {
	repo := &stubEmployeeRepo{}
	sink := &recordingSink{}
	svc := NewEmployeeService(repo, sink, zerolog.Nop())

	pos := "Engineer"
	e, err := svc.Update(context.Background(), admin, "e7", ports.EmployeePatch{Position: &pos})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if e.Position != "Engineer" {
		t.Fatalf("unexpected employee: %+v", e)
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != domain.AuditEmployeeUpdated {
		t.Fatalf("expected update audit, got %+v", sink.entries)
	}

	// an empty patch is a read
	if _, err := svc.Update(context.Background(), admin, "e7", ports.EmployeePatch{}); err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("empty patch must not be audited")
	}
}

func TestEmployeeService_Delete_NotFound(t *testing.T) {
	repo := &stubEmployeeRepo{err: domain.ErrEmployeeNotFound}
	svc := NewEmployeeService(repo, &recordingSink{}, zerolog.Nop())

	if err := svc.Delete(context.Background(), admin, "nope"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

type stubAuditRepo struct {
	inserted *domain.AuditEntry
	err      error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	r.inserted = e
	return r.err
}

func TestAuditService_Record_AssignsID(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.AuditEntry{ActorID: "a"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if repo.inserted == nil || repo.inserted.ID == "" {
		t.Fatalf("expected id to be assigned, got %+v", repo.inserted)
	}

	repo.err = errors.New("write failed")
	if err := svc.Record(context.Background(), domain.AuditEntry{}); err == nil {
		t.Fatalf("expected error")
	}
}
