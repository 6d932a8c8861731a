package candidate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateCandidateRequest) Candidate {
	now := time.Now().UTC()

	return Candidate{
		ID:              uuid.NewString(),
		FullName:        strings.TrimSpace(req.FullName),
		Email:           NormalizeEmail(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		YearsExperience: req.YearsExperience,
		Skills:          NormalizeSkills(req.Skills),
		Status:          StatusApplied,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NormalizeEmail is the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSkills trims entries and drops blanks and case-insensitive
// duplicates. Every write path goes through it so the stats aggregation
// counts each skill once per person.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, s := range in {
		s = strings.TrimSpace(s)

		if s == "" {
			continue
		}

		key := strings.ToLower(s)

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, s)
	}

	return out
}
