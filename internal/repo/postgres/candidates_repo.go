package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidatesRepo struct {
	pool *pgxpool.Pool
}

// constructor function

func NewCandidatesRepo(pool *pgxpool.Pool) *CandidatesRepo {
	return &CandidatesRepo{
		pool: pool,
	}
}

func (r *CandidatesRepo) Create(ctx context.Context, c candidate.Candidate) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO candidates(id, full_name, email, phone, years_experience, skills, status, notes, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		c.ID, c.FullName, c.Email, c.Phone, c.YearsExperience, c.Skills, c.Status, c.Notes, c.CreatedAt, c.UpdatedAt)

	if isUniqueViolation(err) {
		return candidate.ErrDuplicateEmail
	}

	return err
}

func (r *CandidatesRepo) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, phone, years_experience, skills, status, notes, created_at, updated_at
		 FROM candidates WHERE id = $1`, id)

	var c candidate.Candidate

	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.YearsExperience, &c.Skills, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return candidate.Candidate{}, candidate.ErrNotFound
	}

	if err != nil {
		return candidate.Candidate{}, err
	}

	return c, nil
}

func (r *CandidatesRepo) List(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error) {
	baseQuery :=
		`SELECT id,
		full_name,
		email,
		phone,
		years_experience,
		skills,
		status,
		notes,
		created_at,
		updated_at,
		COUNT(*) OVER() AS TOTAL
	FROM candidates`

	where, filterArgs, argsPosition := candidateFilterSQL(f)

	// order column comes from the service-side whitelist, never from raw input
	query := baseQuery + where + fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		candidateSortColumn(f.SortBy), direction(f.SortDesc), argsPosition, argsPosition+1)

	args := append(append([]interface{}{}, filterArgs...), f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]candidate.Candidate, 0, f.Limit)
	total := 0

	for rows.Next() {
		var c candidate.Candidate
		var t int

		err = rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.YearsExperience, &c.Skills, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &t)

		if err != nil {
			return nil, 0, err
		}

		total = t
		output = append(output, c)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	// the window function only reports the match count on returned rows, so a
	// page past the end needs its own count to keep total truthful
	if len(output) == 0 && f.Offset > 0 {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, filterArgs...).Scan(&total)

		if err != nil {
			return nil, 0, err
		}
	}

	return output, total, nil
}

// candidateFilterSQL renders the WHERE clause shared by the list query and the
// empty-page count query. Returns the clause (leading " WHERE", or empty), its
// args, and the next free placeholder position.
func candidateFilterSQL(f candidate.ListFilter) (string, []interface{}, int) {
	var conds []string
	var args []interface{}

	argsPosition := 1

	if f.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, *f.Status)
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

func (r *CandidatesRepo) Update(ctx context.Context, c candidate.Candidate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE candidates
		 SET full_name=$2, email=$3, phone=$4, years_experience=$5, skills=$6, status=$7, notes=$8, updated_at=$9
		 WHERE id=$1`,
		c.ID, c.FullName, c.Email, c.Phone, c.YearsExperience, c.Skills, c.Status, c.Notes, c.UpdatedAt)

	if isUniqueViolation(err) {
		return candidate.ErrDuplicateEmail
	}

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}

	return nil
}

func (r *CandidatesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}

	return nil
}

func (r *CandidatesRepo) Stats(ctx context.Context) (candidate.Stats, error) {
	stats := candidate.Stats{
		ByStatus: make(map[string]int),
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM candidates GROUP BY status`)

	if err != nil {
		return candidate.Stats{}, err
	}

	defer rows.Close()

	for rows.Next() {
		var status string
		var n int

		if err := rows.Scan(&status, &n); err != nil {
			return candidate.Stats{}, err
		}

		stats.ByStatus[status] = n
		stats.Total += n
	}

	if err := rows.Err(); err != nil {
		return candidate.Stats{}, err
	}

	skillRows, err := r.pool.Query(ctx,
		`SELECT LOWER(skill) AS s, COUNT(*) AS n
		 FROM candidates, UNNEST(skills) AS skill
		 GROUP BY s ORDER BY n DESC, s ASC LIMIT 10`)

	if err != nil {
		return candidate.Stats{}, err
	}

	defer skillRows.Close()

	for skillRows.Next() {
		var sc candidate.SkillCount

		if err := skillRows.Scan(&sc.Skill, &sc.Count); err != nil {
			return candidate.Stats{}, err
		}

		stats.TopSkills = append(stats.TopSkills, sc)
	}

	return stats, skillRows.Err()
}

func candidateSortColumn(by string) string {
	switch by {
	case "email":
		return "email"
	case "yearsExperience":
		return "years_experience"
	case "createdAt":
		return "created_at"
	default:
		return "full_name"
	}
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
