package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/devhire/talenthub/internal/domain/employee"
	"github.com/devhire/talenthub/internal/service"
	"github.com/devhire/talenthub/internal/utils"
	"github.com/gin-gonic/gin"
)

type CandidatesManager interface {
	Create(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error)
	Get(ctx context.Context, id string) (candidate.Candidate, error)
	List(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error)
	Update(ctx context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error)
	Delete(ctx context.Context, id string) error
	Hire(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error)
	Stats(ctx context.Context) (candidate.Stats, error)
}

type CandidatesHandler struct {
	svc CandidatesManager
}

func NewCandidatesHandler(svc CandidatesManager) *CandidatesHandler {
	return &CandidatesHandler{svc: svc}
}

func (h *CandidatesHandler) CreateCandidate(ctx *gin.Context) {
	var req candidate.CreateCandidateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, err := h.svc.Create(ctx.Request.Context(), req)

	if err != nil {
		if errors.Is(err, candidate.ErrDuplicateEmail) {
			RespondConflict(ctx, "email_taken", "A candidate with this email already exists")
			return
		}

		RespondInternal(ctx, "Could not create candidate")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *CandidatesHandler) ListCandidates(ctx *gin.Context) {
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

	filter := candidate.ListFilter{
		Query:    utils.OptionalQuery(ctx, "q"),
		Status:   utils.OptionalQuery(ctx, "status"),
		Skill:    utils.OptionalQuery(ctx, "skill"),
		SortBy:   sortBy,
		SortDesc: desc,
		Limit:    page.PageSize,
		Offset:   page.Offset(),
	}

	items, total, err := h.svc.List(ctx.Request.Context(), filter)

	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			RespondBadRequest(ctx, "unsupported sort field", gin.H{"sort": sortBy})
			return
		}

		RespondInternal(ctx, "Could not list candidates")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    total,
		"page":     page.Page,
		"pageSize": page.PageSize,
	})
}

func (h *CandidatesHandler) GetCandidateById(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	c, err := h.svc.Get(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			RespondNotFound(ctx, "Candidate not found")
			return
		}
		RespondInternal(ctx, "Could not fetch candidate")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, c)
}

func (h *CandidatesHandler) UpdateCandidate(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	var req candidate.UpdateCandidateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, err := h.svc.Update(ctx.Request.Context(), id, req)

	if err != nil {
		switch {
		case errors.Is(err, candidate.ErrNotFound):
			RespondNotFound(ctx, "Candidate not found")
		case errors.Is(err, candidate.ErrDuplicateEmail):
			RespondConflict(ctx, "email_taken", "Another candidate already uses this email")
		default:
			RespondInternal(ctx, "Could not update candidate")
		}
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *CandidatesHandler) DeleteCandidate(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	err := h.svc.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			RespondNotFound(ctx, "Candidate not found")
			return
		}
		RespondInternal(ctx, "Could not delete candidate")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *CandidatesHandler) HireCandidate(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	var req employee.HireRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hired, err := h.svc.Hire(ctx.Request.Context(), id, req)

	if err != nil {
		switch {
		case errors.Is(err, candidate.ErrNotFound):
			RespondNotFound(ctx, "Candidate not found")
		case errors.Is(err, candidate.ErrAlreadyHired):
			RespondConflict(ctx, "already_hired", "Candidate has already been hired")
		case errors.Is(err, employee.ErrDuplicateEmail):
			RespondConflict(ctx, "email_taken", "An employee with this email already exists")
		default:
			RespondInternal(ctx, "Could not hire candidate")
		}
		return
	}

	ctx.JSON(http.StatusCreated, hired)
}

func (h *CandidatesHandler) CandidateStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context())

	if err != nil {
		RespondInternal(ctx, "Could not compute candidate stats")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, stats)
}
