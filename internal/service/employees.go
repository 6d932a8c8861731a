package service

import (
	"context"
	"strings"
	"time"

	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/devhire/talenthub/internal/domain/employee"
)

type EmployeesService struct {
	repo EmployeesStore
}

func NewEmployeesService(repo EmployeesStore) *EmployeesService {
	return &EmployeesService{repo: repo}
}

func (s *EmployeesService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	e := employee.NewFromCreateRequest(req)

	err := s.repo.Create(ctx, e)

	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (s *EmployeesService) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeesService) List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int, error) {
	if !validSort(f.SortBy, "fullName", "email", "hiredAt", "createdAt") {
		return nil, 0, ErrInvalidSort
	}

	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)

	return s.repo.List(ctx, f)
}

func (s *EmployeesService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	existing, err := s.repo.GetByID(ctx, id)

	if err != nil {
		return employee.Employee{}, err
	}

	existing.FullName = strings.TrimSpace(req.FullName)
	existing.Email = candidate.NormalizeEmail(req.Email)
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.Department = strings.TrimSpace(req.Department)
	existing.Position = strings.TrimSpace(req.Position)
	existing.Skills = candidate.NormalizeSkills(req.Skills)

	if !req.HiredAt.IsZero() {
		existing.HiredAt = req.HiredAt
	}

	existing.UpdatedAt = time.Now().UTC()

	err = s.repo.Update(ctx, existing)

	if err != nil {
		return employee.Employee{}, err
	}

	return existing, nil
}

func (s *EmployeesService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
