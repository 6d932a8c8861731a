package employee

import (
	"strings"
	"time"

	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateEmployeeRequest) Employee {
	now := time.Now().UTC()

	hiredAt := req.HiredAt
	if hiredAt.IsZero() {
		hiredAt = now
	}

	return Employee{
		ID:         uuid.NewString(),
		FullName:   strings.TrimSpace(req.FullName),
		Email:      candidate.NormalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Skills:     candidate.NormalizeSkills(req.Skills),
		HiredAt:    hiredAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewFromCandidate carries a candidate's identity and skills over into a new
// employee record when the candidate is hired.
func NewFromCandidate(c candidate.Candidate, req HireRequest) Employee {
	now := time.Now().UTC()

	return Employee{
		ID:         uuid.NewString(),
		FullName:   c.FullName,
		Email:      c.Email,
		Phone:      c.Phone,
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Skills:     c.Skills,
		HiredAt:    now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
