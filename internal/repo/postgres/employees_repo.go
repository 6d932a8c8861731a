package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devhire/talenthub/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeesRepo struct {
	pool *pgxpool.Pool
}

func NewEmployeesRepo(pool *pgxpool.Pool) *EmployeesRepo {
	return &EmployeesRepo{
		pool: pool,
	}
}

func (r *EmployeesRepo) Create(ctx context.Context, e employee.Employee) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employees(id, full_name, email, phone, department, position, skills, hired_at, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.FullName, e.Email, e.Phone, e.Department, e.Position, e.Skills, e.HiredAt, e.CreatedAt, e.UpdatedAt)

	if isUniqueViolation(err) {
		return employee.ErrDuplicateEmail
	}

	return err
}

func (r *EmployeesRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, phone, department, position, skills, hired_at, created_at, updated_at
		 FROM employees WHERE id = $1`, id)

	var e employee.Employee

	err := row.Scan(&e.ID, &e.FullName, &e.Email, &e.Phone, &e.Department, &e.Position, &e.Skills, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}

	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *EmployeesRepo) List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int, error) {
	baseQuery :=
		`SELECT id,
		full_name,
		email,
		phone,
		department,
		position,
		skills,
		hired_at,
		created_at,
		updated_at,
		COUNT(*) OVER() AS TOTAL
	FROM employees`

	where, filterArgs, argsPosition := employeeFilterSQL(f)

	query := baseQuery + where + fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		employeeSortColumn(f.SortBy), direction(f.SortDesc), argsPosition, argsPosition+1)

	args := append(append([]interface{}{}, filterArgs...), f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]employee.Employee, 0, f.Limit)
	total := 0

	for rows.Next() {
		var e employee.Employee
		var t int

		err = rows.Scan(&e.ID, &e.FullName, &e.Email, &e.Phone, &e.Department, &e.Position, &e.Skills, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt, &t)

		if err != nil {
			return nil, 0, err
		}

		total = t
		output = append(output, e)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	// see CandidatesRepo.List: COUNT(*) OVER() vanishes with the rows
	if len(output) == 0 && f.Offset > 0 {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, filterArgs...).Scan(&total)

		if err != nil {
			return nil, 0, err
		}
	}

	return output, total, nil
}

func employeeFilterSQL(f employee.ListFilter) (string, []interface{}, int) {
	var conds []string
	var args []interface{}

	argsPosition := 1

	if f.Department != nil {
		conds = append(conds, fmt.Sprintf("department ILIKE $%d", argsPosition))
		args = append(args, *f.Department)
		argsPosition++
	}

	if f.Skill != nil {
		conds = append(conds, fmt.Sprintf("$%d ILIKE ANY(skills)", argsPosition))
		args = append(args, *f.Skill)
		argsPosition++
	}

	if f.Query != nil {
		conds = append(conds, fmt.Sprintf("(full_name ILIKE '%%' || $%d || '%%' OR email ILIKE '%%' || $%d || '%%')", argsPosition, argsPosition))
		args = append(args, *f.Query)
		argsPosition++
	}

	if len(conds) == 0 {
		return "", nil, argsPosition
	}

	return " WHERE " + strings.Join(conds, " AND "), args, argsPosition
}

func (r *EmployeesRepo) Update(ctx context.Context, e employee.Employee) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employees
		 SET full_name=$2, email=$3, phone=$4, department=$5, position=$6, skills=$7, hired_at=$8, updated_at=$9
		 WHERE id=$1`,
		e.ID, e.FullName, e.Email, e.Phone, e.Department, e.Position, e.Skills, e.HiredAt, e.UpdatedAt)

	if isUniqueViolation(err) {
		return employee.ErrDuplicateEmail
	}

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}

	return nil
}

func (r *EmployeesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}

	return nil
}

func employeeSortColumn(by string) string {
	switch by {
	case "email":
		return "email"
	case "hiredAt":
		return "hired_at"
	case "createdAt":
		return "created_at"
	default:
		return "full_name"
	}
}
