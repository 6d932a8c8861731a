package repo

import (
	"context"

	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/devhire/talenthub/internal/domain/employee"
	"github.com/devhire/talenthub/internal/observability"
	"github.com/devhire/talenthub/internal/service"
)

// InstrumentedCandidates decorates any candidates store with per-op latency
// metrics. Works the same over the memory and postgres implementations.
type InstrumentedCandidates struct {
	next service.CandidatesStore
	obs  *observability.Prom
}

func NewInstrumentedCandidates(next service.CandidatesStore, obs *observability.Prom) *InstrumentedCandidates {
	return &InstrumentedCandidates{next: next, obs: obs}
}

func (r *InstrumentedCandidates) Create(ctx context.Context, c candidate.Candidate) error {
	return r.obs.ObserveRepo("candidates", "create", func() error {
		return r.next.Create(ctx, c)
	})
}

func (r *InstrumentedCandidates) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	var out candidate.Candidate

	err := r.obs.ObserveRepo("candidates", "get", func() error {
		var err error
		out, err = r.next.GetByID(ctx, id)
		return err
	})

	return out, err
}

func (r *InstrumentedCandidates) List(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error) {
	var (
		items []candidate.Candidate
		total int
	)

	err := r.obs.ObserveRepo("candidates", "list", func() error {
		var err error
		items, total, err = r.next.List(ctx, f)
		return err
	})

	return items, total, err
}

func (r *InstrumentedCandidates) Update(ctx context.Context, c candidate.Candidate) error {
	return r.obs.ObserveRepo("candidates", "update", func() error {
		return r.next.Update(ctx, c)
	})
}

func (r *InstrumentedCandidates) Delete(ctx context.Context, id string) error {
	return r.obs.ObserveRepo("candidates", "delete", func() error {
		return r.next.Delete(ctx, id)
	})
}

func (r *InstrumentedCandidates) Stats(ctx context.Context) (candidate.Stats, error) {
	var out candidate.Stats

	err := r.obs.ObserveRepo("candidates", "stats", func() error {
		var err error
		out, err = r.next.Stats(ctx)
		return err
	})

	return out, err
}

type InstrumentedEmployees struct {
	next service.EmployeesStore
	obs  *observability.Prom
}

func NewInstrumentedEmployees(next service.EmployeesStore, obs *observability.Prom) *InstrumentedEmployees {
	return &InstrumentedEmployees{next: next, obs: obs}
}

func (r *InstrumentedEmployees) Create(ctx context.Context, e employee.Employee) error {
	return r.obs.ObserveRepo("employees", "create", func() error {
		return r.next.Create(ctx, e)
	})
}

func (r *InstrumentedEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var out employee.Employee

	err := r.obs.ObserveRepo("employees", "get", func() error {
		var err error
		out, err = r.next.GetByID(ctx, id)
		return err
	})

	return out, err
}

func (r *InstrumentedEmployees) List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int, error) {
	var (
		items []employee.Employee
		total int
	)

	err := r.obs.ObserveRepo("employees", "list", func() error {
		var err error
		items, total, err = r.next.List(ctx, f)
		return err
	})

	return items, total, err
}

func (r *InstrumentedEmployees) Update(ctx context.Context, e employee.Employee) error {
	return r.obs.ObserveRepo("employees", "update", func() error {
		return r.next.Update(ctx, e)
	})
}

func (r *InstrumentedEmployees) Delete(ctx context.Context, id string) error {
	return r.obs.ObserveRepo("employees", "delete", func() error {
		return r.next.Delete(ctx, id)
	})
}
