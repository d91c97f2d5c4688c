package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/core/ports"
)

// EmployeeHandler serves the admin-only employee routes.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /api/employees/addEmployee.
//
// @Summary      Add an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee and equipment"
// @Success      201   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/employees/addEmployee [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	ac, err := actor(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	emp, err := h.service.Create(c.Request().Context(), ac, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, emp)
}

// List handles GET /api/employees/getEmployees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number, starting at 1"
// @Success      200   {object}  employeePageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/employees/getEmployees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be a number")
		}
		page = n
	}

	res, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeePageResponse{
		Data:       res.Data,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /api/employees/getEmployeeById/:id.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  domain.Employee
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/getEmployeeById/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	emp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}

// Update handles PATCH /api/employees/updateEmployeeById/:id.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to change"
// @Success      200   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/employees/updateEmployeeById/{id} [patch]
func (h *EmployeeHandler) Update(c echo.Context) error {
	ac, err := actor(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	emp, err := h.service.Update(c.Request().Context(), ac, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}

// Delete handles DELETE /api/employees/deleteEmployeeById/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/deleteEmployeeById/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	ac, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), ac, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Employee deleted"})
}
