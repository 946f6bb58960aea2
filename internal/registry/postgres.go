package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
)

// PostgresProvider serves the registry from PostgreSQL. Catalogs come back
// ordered by snapshot position so matching stays deterministic.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

func (p *PostgresProvider) ResolveSource(ctx context.Context, source string) (string, error) {
	var code string
	err := p.pool.QueryRow(ctx,
		`SELECT i.code
		 FROM institutions i
		 LEFT JOIN institution_aliases a ON a.institution_code = i.code
		 WHERE LOWER(i.code) = $1 OR LOWER(a.alias) = $1
		 LIMIT 1`,
		strings.ToLower(strings.TrimSpace(source))).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUnknownSource
	}
	if err != nil {
		return "", fmt.Errorf("resolve source: %w", err)
	}
	return code, nil
}

func (p *PostgresProvider) FetchCatalog(ctx context.Context, sourceCode string) ([]model.CourseRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, source_code, title, code, description, skills, skill_group_weights
		 FROM courses
		 WHERE source_code = $1
		 ORDER BY position ASC`,
		sourceCode)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer rows.Close()

	var catalog []model.CourseRecord
	for rows.Next() {
		var c model.CourseRecord
		if err := rows.Scan(&c.ID, &c.SourceInstitution, &c.Title, &c.Code,
			&c.Description, &c.Skills, &c.SkillGroupWeights); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		catalog = append(catalog, c)
	}
	return catalog, rows.Err()
}

func (p *PostgresProvider) Sources(ctx context.Context) ([]model.Institution, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT i.code, i.name, COALESCE(ARRAY_AGG(a.alias) FILTER (WHERE a.alias IS NOT NULL), '{}')
		 FROM institutions i
		 LEFT JOIN institution_aliases a ON a.institution_code = i.code
		 GROUP BY i.code, i.name
		 ORDER BY i.code ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var institutions []model.Institution
	for rows.Next() {
		var inst model.Institution
		if err := rows.Scan(&inst.Code, &inst.Name, &inst.Aliases); err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		institutions = append(institutions, inst)
	}
	return institutions, rows.Err()
}

// CountCourses returns the catalog size for one source, for pagination.
func (p *PostgresProvider) CountCourses(ctx context.Context, sourceCode string) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses WHERE source_code = $1`, sourceCode).Scan(&n)
	return n, err
}

// ListCourses returns one page of a source's catalog in snapshot order.
func (p *PostgresProvider) ListCourses(ctx context.Context, sourceCode string, limit, offset int) ([]model.CourseRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, source_code, title, code, description, skills, skill_group_weights
		 FROM courses
		 WHERE source_code = $1
		 ORDER BY position ASC
		 LIMIT $2 OFFSET $3`,
		sourceCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var catalog []model.CourseRecord
	for rows.Next() {
		var c model.CourseRecord
		if err := rows.Scan(&c.ID, &c.SourceInstitution, &c.Title, &c.Code,
			&c.Description, &c.Skills, &c.SkillGroupWeights); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		catalog = append(catalog, c)
	}
	return catalog, rows.Err()
}
