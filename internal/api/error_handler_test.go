package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "Email already exists"},
		{"wrapped duplicate email", fmt.Errorf("create user: %w", domain.ErrDuplicateEmail), http.StatusBadRequest, "Email already exists"},
		{"duplicate national id", domain.ErrDuplicateNationalID, http.StatusBadRequest, "National ID already exists"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"employee not found", domain.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
		{"bad password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("mongo: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, body.Message)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationLists(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	ve := &domain.ValidationError{}
	ve.Add("email", "email must be a valid email address")
	ve.Add("confirmPassword", "Passwords do not match")

	NewHTTPErrorHandler(zerolog.Nop())(ve, c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message != "Validation failed" || len(body.Errors) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Errors[1].Field != "confirmPassword" {
		t.Errorf("unexpected field order: %+v", body.Errors)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response must not be rewritten, got %d %q", rec.Code, rec.Body.String())
	}
}
