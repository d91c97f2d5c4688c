package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

type stubEmployeeService struct {
	createFn func(ctx context.Context, actor domain.AuthContext, in ports.EmployeeInput) (*domain.Employee, error)
	listFn   func(ctx context.Context, page int) (*ports.EmployeePage, error)
	getFn    func(ctx context.Context, id string) (*domain.Employee, error)
	updateFn func(ctx context.Context, actor domain.AuthContext, id string, p ports.EmployeePatch) (*domain.Employee, error)
	deleteFn func(ctx context.Context, actor domain.AuthContext, id string) error
}

func (s *stubEmployeeService) Create(ctx context.Context, a domain.AuthContext, in ports.EmployeeInput) (*domain.Employee, error) {
	return s.createFn(ctx, a, in)
}
func (s *stubEmployeeService) List(ctx context.Context, page int) (*ports.EmployeePage, error) {
	return s.listFn(ctx, page)
}
func (s *stubEmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.getFn(ctx, id)
}
func (s *stubEmployeeService) Update(ctx context.Context, a domain.AuthContext, id string, p ports.EmployeePatch) (*domain.Employee, error) {
	return s.updateFn(ctx, a, id, p)
}
func (s *stubEmployeeService) Delete(ctx context.Context, a domain.AuthContext, id string) error {
	return s.deleteFn(ctx, a, id)
}

var admin = domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(domain.WithAuthContext(req.Context(), admin))
}

const validEmployee = `{"firstname":"Ada","lastname":"Lovelace","nationalId":"AB12345","telephone":"5551234567",
"email":"ada@corp.com","department":"R&D","position":"Engineer","manufacturer":"Lenovo","model":"X1","serialNumber":"SN-1"}`

func TestEmployeeHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		createFn: func(ctx context.Context, a domain.AuthContext, in ports.EmployeeInput) (*domain.Employee, error) {
			if a != admin {
				t.Fatalf("unexpected actor: %+v", a)
			}
			if in.NationalID != "AB12345" || in.SerialNumber != "SN-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Employee{ID: "e1", Firstname: in.Firstname}, nil
		},
	}
	h := NewEmployeeHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(asAdmin(jsonRequest(http.MethodPost, "/api/employees/addEmployee", validEmployee)), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestEmployeeHandler_Create_ValidationCollectsFields(t *testing.T) {
	e := newTestEcho()
	h := NewEmployeeHandler(&stubEmployeeService{})

	c := e.NewContext(asAdmin(jsonRequest(http.MethodPost, "/api/employees/addEmployee", `{"firstname":"A","email":"nope"}`)), httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range []string{"firstname", "email", "nationalId", "serialNumber"} {
		if !ve.Has(f) {
			t.Errorf("expected %s in errors, got %+v", f, ve.Fields)
		}
	}
}

func TestEmployeeHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, page int) (*ports.EmployeePage, error) {
			if page != 2 {
				t.Fatalf("expected page 2, got %d", page)
			}
			return &ports.EmployeePage{Data: []*domain.Employee{{ID: "e1"}}, Page: 2, PageSize: 10, TotalPages: 3}, nil
		},
	}
	h := NewEmployeeHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(asAdmin(httptest.NewRequest(http.MethodGet, "/api/employees/getEmployees?page=2", nil)), rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp employeePageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Page != 2 || resp.PageSize != 10 || resp.TotalPages != 3 || len(resp.Data) != 1 {
		t.Errorf("unexpected page: %+v", resp)
	}
}

func TestEmployeeHandler_List_BadPage(t *testing.T) {
	e := newTestEcho()
	h := NewEmployeeHandler(&stubEmployeeService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/employees/getEmployees?page=abc", nil), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		getFn: func(ctx context.Context, id string) (*domain.Employee, error) {
			if id != "missing" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, domain.ErrEmployeeNotFound
		},
	}
	h := NewEmployeeHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeHandler_Update_PassesOnlyProvidedFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		updateFn: func(ctx context.Context, a domain.AuthContext, id string, p ports.EmployeePatch) (*domain.Employee, error) {
			if id != "e1" {
				t.Fatalf("unexpected id %q", id)
			}
			if p.Position == nil || *p.Position != "Lead" {
				t.Fatalf("expected position in patch, got %+v", p)
			}
			if p.Firstname != nil || p.NationalID != nil {
				t.Fatalf("unexpected fields in patch: %+v", p)
			}
			return &domain.Employee{ID: id, Position: *p.Position}, nil
		},
	}
	h := NewEmployeeHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(asAdmin(jsonRequest(http.MethodPatch, "/", `{"position":"Lead"}`)), rec)
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestEmployeeHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubEmployeeService{
		deleteFn: func(ctx context.Context, a domain.AuthContext, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewEmployeeHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(asAdmin(httptest.NewRequest(http.MethodDelete, "/", nil)), rec)
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "e1" || rec.Code != http.StatusOK {
		t.Fatalf("expected e1 deleted with 200, got %q %d", deleted, rec.Code)
	}
}

func TestEmployeeHandler_MutationsRequireIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewEmployeeHandler(&stubEmployeeService{})

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	if err := h.Delete(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
