package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/devhire/talenthub/internal/domain/employee"
	"github.com/devhire/talenthub/internal/service"
	"github.com/devhire/talenthub/internal/utils"
	"github.com/gin-gonic/gin"
)

type EmployeesManager interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	Get(ctx context.Context, id string) (employee.Employee, error)
	List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int, error)
	Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error)
	Delete(ctx context.Context, id string) error
}

type EmployeesHandler struct {
	svc EmployeesManager
}

func NewEmployeesHandler(svc EmployeesManager) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

func (h *EmployeesHandler) CreateEmployee(ctx *gin.Context) {
	var req employee.CreateEmployeeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.svc.Create(ctx.Request.Context(), req)

	if err != nil {
		if errors.Is(err, employee.ErrDuplicateEmail) {
			RespondConflict(ctx, "email_taken", "An employee with this email already exists")
			return
		}

		RespondInternal(ctx, "Could not create employee")
		return
	}

	ctx.JSON(http.StatusCreated, e)
}

func (h *EmployeesHandler) ListEmployees(ctx *gin.Context) {
	page, err := utils.ParsePage(ctx, service.DefaultPageSize, service.MaxPageSize)

	if err != nil {
		RespondBadRequest(ctx, err.Error(), nil)
		return
	}

	sortBy, desc, err := utils.ParseSort(ctx)

	if err != nil {
		RespondBadRequest(ctx, err.Error(), nil)
		return
	}

	filter := employee.ListFilter{
		Query:      utils.OptionalQuery(ctx, "q"),
		Department: utils.OptionalQuery(ctx, "department"),
		Skill:      utils.OptionalQuery(ctx, "skill"),
		SortBy:     sortBy,
		SortDesc:   desc,
		Limit:      page.PageSize,
		Offset:     page.Offset(),
	}

	items, total, err := h.svc.List(ctx.Request.Context(), filter)

	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			RespondBadRequest(ctx, "unsupported sort field", gin.H{"sort": sortBy})
			return
		}

		RespondInternal(ctx, "Could not list employees")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     page.Page,
		"pageSize": page.PageSize,
	})
}

func (h *EmployeesHandler) GetEmployeeById(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "employee id must be a valid UUID", nil)
		return
	}

	e, err := h.svc.Get(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			RespondNotFound(ctx, "Employee not found")
			return
		}
		RespondInternal(ctx, "Could not fetch employee")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

func (h *EmployeesHandler) UpdateEmployee(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "employee id must be a valid UUID", nil)
		return
	}

	var req employee.UpdateEmployeeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.svc.Update(ctx.Request.Context(), id, req)

	if err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			RespondNotFound(ctx, "Employee not found")
		case errors.Is(err, employee.ErrDuplicateEmail):
			RespondConflict(ctx, "email_taken", "Another employee already uses this email")
		default:
			RespondInternal(ctx, "Could not update employee")
		}
		return
	}

	ctx.JSON(http.StatusOK, e)
}

func (h *EmployeesHandler) DeleteEmployee(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "employee id must be a valid UUID", nil)
		return
	}

	err := h.svc.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			RespondNotFound(ctx, "Employee not found")
			return
		}
		RespondInternal(ctx, "Could not delete employee")
		return
	}

	ctx.Status(http.StatusNoContent)
}
