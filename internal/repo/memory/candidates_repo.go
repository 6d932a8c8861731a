package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/devhire/talenthub/internal/domain/candidate"
)

// CandidatesRepo keeps every candidate in a single mutex-guarded map plus an
// email index used for the uniqueness check.
type CandidatesRepo struct {
	mu     sync.RWMutex
	items  map[string]candidate.Candidate
	emails map[string]string // normalized email -> id
}

func NewCandidatesRepo() *CandidatesRepo {
	return &CandidatesRepo{
		items:  make(map[string]candidate.Candidate),
		emails: make(map[string]string),
	}
}

func (r *CandidatesRepo) Create(ctx context.Context, c candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[c.Email]; taken {
		return candidate.ErrDuplicateEmail
	}

	r.items[c.ID] = cloneCandidate(c)
	r.emails[c.Email] = c.ID

	return nil
}

func (r *CandidatesRepo) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]

	if !ok {
		return candidate.Candidate{}, candidate.ErrNotFound
	}

	return cloneCandidate(c), nil
}

func (r *CandidatesRepo) List(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error) {
	r.mu.RLock()

	matched := make([]candidate.Candidate, 0, len(r.items))

	for _, c := range r.items {
		if matchesCandidate(c, f) {
			matched = append(matched, cloneCandidate(c))
		}
	}

	r.mu.RUnlock()

	sortCandidates(matched, f.SortBy, f.SortDesc)

	total := len(matched)
	page := pageSlice(len(matched), f.Offset, f.Limit)

	return matched[page.lo:page.hi], total, nil
}

// Update replaces the whole record. The email index is rewritten when the
// address changed.
func (r *CandidatesRepo) Update(ctx context.Context, c candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.items[c.ID]

	if !ok {
		return candidate.ErrNotFound
	}

	if owner, taken := r.emails[c.Email]; taken && owner != c.ID {
		return candidate.ErrDuplicateEmail
	}

	if prev.Email != c.Email {
		delete(r.emails, prev.Email)
		r.emails[c.Email] = c.ID
	}

	r.items[c.ID] = cloneCandidate(c)

	return nil
}

func (r *CandidatesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]

	if !ok {
		return candidate.ErrNotFound
	}

	delete(r.items, id)
	delete(r.emails, c.Email)

	return nil
}

func (r *CandidatesRepo) Stats(ctx context.Context) (candidate.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := candidate.Stats{
		Total:    len(r.items),
		ByStatus: make(map[string]int),
	}

	skillCounts := make(map[string]int)

	for _, c := range r.items {
		stats.ByStatus[c.Status]++

		for _, s := range c.Skills {
			skillCounts[strings.ToLower(s)]++
		}
	}

	stats.TopSkills = topSkills(skillCounts, 10)

	return stats, nil
}

func matchesCandidate(c candidate.Candidate, f candidate.ListFilter) bool {
	if f.Status != nil && c.Status != *f.Status {
		return false
	}

	if f.Skill != nil && !hasSkill(c.Skills, *f.Skill) {
		return false
	}

	if f.Query != nil {
		q := strings.ToLower(*f.Query)

		if !strings.Contains(strings.ToLower(c.FullName), q) &&
			!strings.Contains(c.Email, q) {
			return false
		}
	}

	return true
}

func sortCandidates(items []candidate.Candidate, by string, desc bool) {
	less := func(a, b candidate.Candidate) bool {
		switch by {
		case "email":
			return a.Email < b.Email
		case "yearsExperience":
			return a.YearsExperience < b.YearsExperience
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		default: // fullName
			return strings.ToLower(a.FullName) < strings.ToLower(b.FullName)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func cloneCandidate(c candidate.Candidate) candidate.Candidate {
	// skills slice must not be shared with callers
	if c.Skills != nil {
		c.Skills = append([]string(nil), c.Skills...)
	}

	return c
}
