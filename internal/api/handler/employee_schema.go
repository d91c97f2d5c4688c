package handler

import (
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

// errorResponse documents the error envelope rendered by the central handler.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

type createEmployeeRequest struct {
	Firstname    string `json:"firstname"    validate:"required,min=2,max=50"`
	Lastname     string `json:"lastname"     validate:"required,min=2,max=50"`
	NationalID   string `json:"nationalId"   validate:"required,min=5,max=20"`
	Telephone    string `json:"telephone"    validate:"required,min=7,max=20"`
	Email        string `json:"email"        validate:"required,email"`
	Department   string `json:"department"   validate:"required,max=100"`
	Position     string `json:"position"     validate:"required,max=100"`
	Manufacturer string `json:"manufacturer" validate:"required,max=50"`
	Model        string `json:"model"        validate:"required,max=50"`
	SerialNumber string `json:"serialNumber" validate:"required,max=50"`
}

func (r createEmployeeRequest) toInput() ports.EmployeeInput {
	return ports.EmployeeInput{
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		NationalID:   r.NationalID,
		Telephone:    r.Telephone,
		Email:        r.Email,
		Department:   r.Department,
		Position:     r.Position,
		Manufacturer: r.Manufacturer,
		Model:        r.Model,
		SerialNumber: r.SerialNumber,
	}
}

// updateEmployeeRequest mirrors createEmployeeRequest with every field optional.
type updateEmployeeRequest struct {
	Firstname    *string `json:"firstname"    validate:"omitempty,min=2,max=50"`
	Lastname     *string `json:"lastname"     validate:"omitempty,min=2,max=50"`
	NationalID   *string `json:"nationalId"   validate:"omitempty,min=5,max=20"`
	Telephone    *string `json:"telephone"    validate:"omitempty,min=7,max=20"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Department   *string `json:"department"   validate:"omitempty,max=100"`
	Position     *string `json:"position"     validate:"omitempty,max=100"`
	Manufacturer *string `json:"manufacturer" validate:"omitempty,max=50"`
	Model        *string `json:"model"        validate:"omitempty,max=50"`
	SerialNumber *string `json:"serialNumber" validate:"omitempty,max=50"`
}

func (r updateEmployeeRequest) toPatch() ports.EmployeePatch {
	return ports.EmployeePatch{
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		NationalID:   r.NationalID,
		Telephone:    r.Telephone,
		Email:        r.Email,
		Department:   r.Department,
		Position:     r.Position,
		Manufacturer: r.Manufacturer,
		Model:        r.Model,
		SerialNumber: r.SerialNumber,
	}
}

type employeePageResponse struct {
	Data       []*domain.Employee `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

type messageResponse struct {
	Message string `json:"message"`
}
