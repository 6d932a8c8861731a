package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/devhire/talenthub/internal/domain/employee"
)

type EmployeesRepo struct {
	mu     sync.RWMutex
	items  map[string]employee.Employee
	emails map[string]string
}

func NewEmployeesRepo() *EmployeesRepo {
	return &EmployeesRepo{
		items:  make(map[string]employee.Employee),
		emails: make(map[string]string),
	}
}

func (r *EmployeesRepo) Create(ctx context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[e.Email]; taken {
		return employee.ErrDuplicateEmail
	}

	r.items[e.ID] = cloneEmployee(e)
	r.emails[e.Email] = e.ID

	return nil
}

func (r *EmployeesRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]

	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}

	return cloneEmployee(e), nil
}

func (r *EmployeesRepo) List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int, error) {
	r.mu.RLock()

	matched := make([]employee.Employee, 0, len(r.items))

	for _, e := range r.items {
		if matchesEmployee(e, f) {
			matched = append(matched, cloneEmployee(e))
		}
	}

	r.mu.RUnlock()

	sortEmployees(matched, f.SortBy, f.SortDesc)

	total := len(matched)
	page := pageSlice(len(matched), f.Offset, f.Limit)

	return matched[page.lo:page.hi], total, nil
}

func (r *EmployeesRepo) Update(ctx context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.items[e.ID]

	if !ok {
		return employee.ErrNotFound
	}

	if owner, taken := r.emails[e.Email]; taken && owner != e.ID {
		return employee.ErrDuplicateEmail
	}

	if prev.Email != e.Email {
		delete(r.emails, prev.Email)
		r.emails[e.Email] = e.ID
	}

	r.items[e.ID] = cloneEmployee(e)

	return nil
}

func (r *EmployeesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok {
		return employee.ErrNotFound
	}

	delete(r.items, id)
	delete(r.emails, e.Email)

	return nil
}

func matchesEmployee(e employee.Employee, f employee.ListFilter) bool {
	if f.Department != nil && !strings.EqualFold(e.Department, *f.Department) {
		return false
	}

	if f.Skill != nil && !hasSkill(e.Skills, *f.Skill) {
		return false
	}

	if f.Query != nil {
		q := strings.ToLower(*f.Query)

		if !strings.Contains(strings.ToLower(e.FullName), q) &&
			!strings.Contains(e.Email, q) {
			return false
		}
	}

	return true
}

func sortEmployees(items []employee.Employee, by string, desc bool) {
	less := func(a, b employee.Employee) bool {
		switch by {
		case "email":
			return a.Email < b.Email
		case "hiredAt":
			return a.HiredAt.Before(b.HiredAt)
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

func cloneEmployee(e employee.Employee) employee.Employee {
	if e.Skills != nil {
		e.Skills = append([]string(nil), e.Skills...)
	}

	return e
}
