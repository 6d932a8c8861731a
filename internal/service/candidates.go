package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/devhire/talenthub/internal/cache"
	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/devhire/talenthub/internal/domain/employee"
)

// pagination defaults shared by both collections
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrInvalidSort = errors.New("unsupported sort field")

// Keep these small interfaces so tests can fake them easily.
type CandidatesStore interface {
	Create(ctx context.Context, c candidate.Candidate) error
	GetByID(ctx context.Context, id string) (candidate.Candidate, error)
	List(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error)
	Update(ctx context.Context, c candidate.Candidate) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (candidate.Stats, error)
}

type EmployeesStore interface {
	Create(ctx context.Context, e employee.Employee) error
	GetByID(ctx context.Context, id string) (employee.Employee, error)
	List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int, error)
	Update(ctx context.Context, e employee.Employee) error
	Delete(ctx context.Context, id string) error
}

type CandidatesService struct {
	repo      CandidatesStore
	employees EmployeesStore
	stats     *cache.Cache
}

func NewCandidatesService(repo CandidatesStore, employees EmployeesStore) *CandidatesService {
	return &CandidatesService{
		repo:      repo,
		employees: employees,
		stats:     cache.New(5 * time.Second),
	}
}

func (s *CandidatesService) Create(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
	c := candidate.NewFromCreateRequest(req)

	err := s.repo.Create(ctx, c)

	if err != nil {
		return candidate.Candidate{}, err
	}

	s.stats.Delete(statsCacheKey)

	return c, nil
}

func (s *CandidatesService) Get(ctx context.Context, id string) (candidate.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CandidatesService) List(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error) {
	if !validSort(f.SortBy, "fullName", "email", "yearsExperience", "createdAt") {
		return nil, 0, ErrInvalidSort
	}

	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)

	return s.repo.List(ctx, f)
}

func (s *CandidatesService) Update(ctx context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error) {
	existing, err := s.repo.GetByID(ctx, id)

	if err != nil {
		return candidate.Candidate{}, err
	}

	existing.FullName = strings.TrimSpace(req.FullName)
	existing.Email = candidate.NormalizeEmail(req.Email)
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.YearsExperience = req.YearsExperience
	existing.Skills = candidate.NormalizeSkills(req.Skills)
	existing.Status = req.Status
	existing.Notes = req.Notes
	existing.UpdatedAt = time.Now().UTC()

	err = s.repo.Update(ctx, existing)

	if err != nil {
		return candidate.Candidate{}, err
	}

	s.stats.Delete(statsCacheKey)

	return existing, nil
}

func (s *CandidatesService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)

	if err == nil {
		s.stats.Delete(statsCacheKey)
	}

	return err
}

// Hire converts a candidate into an employee. The employee record is created
// first; the candidate status flip afterwards is best effort in the
// two-store setup, which is acceptable for a single-process deployment.
func (s *CandidatesService) Hire(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error) {
	c, err := s.repo.GetByID(ctx, id)

	if err != nil {
		return employee.Employee{}, err
	}

	if c.Status == candidate.StatusHired {
		return employee.Employee{}, candidate.ErrAlreadyHired
	}

	hired := employee.NewFromCandidate(c, req)

	err = s.employees.Create(ctx, hired)

	if err != nil {
		return employee.Employee{}, err
	}

	c.Status = candidate.StatusHired
	c.UpdatedAt = time.Now().UTC()

	err = s.repo.Update(ctx, c)

	if err != nil {
		return employee.Employee{}, err
	}

	s.stats.Delete(statsCacheKey)

	return hired, nil
}

const statsCacheKey = "candidates:stats"

func (s *CandidatesService) Stats(ctx context.Context) (candidate.Stats, error) {
	if v, ok := s.stats.Get(statsCacheKey); ok {
		if cached, ok := v.(candidate.Stats); ok {
			return cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx)

	if err != nil {
		return candidate.Stats{}, err
	}

	s.stats.Set(statsCacheKey, stats)

	return stats, nil
}

func validSort(by string, allowed ...string) bool {
	if by == "" {
		return true
	}

	for _, a := range allowed {
		if by == a {
			return true
		}
	}

	return false
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
