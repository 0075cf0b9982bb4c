package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_project_store.go -package=mocks inmoportal/internal/storage ProjectStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// maxComunaRows bounds the distinct-comuna scan; the list feeds the filter
// extractor's vocabulary, not pagination.
const maxComunaRows = 500

// ProjectStore defines read access to the project catalog.
type ProjectStore interface {
	// List returns projects matching the filters, up to limit rows.
	List(ctx context.Context, f Filters, limit int) ([]Project, error)
	// GetBySlug returns a single project by slug, or ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	// DistinctComunas returns the distinct comuna names present in the catalog.
	DistinctComunas(ctx context.Context) ([]string, error)
}

// ProjectRepo provides methods for project catalog queries.
// It implements the ProjectStore interface.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = "id, name, comuna, address, uf_min, uf_max, status, tipologias, slug, project_url"

// List returns projects matching the filters, up to limit rows.
// Absent filter fields add no condition. UF bounds compare against the
// stored columns directly, so rows with NULL bounds are excluded by the
// comparison itself when a price filter is present.
func (r *ProjectRepo) List(ctx context.Context, f Filters, limit int) ([]Project, error) {
	var conds []string
	var args []any

	if f.Comuna != "" {
		conds = append(conds, "LOWER(comuna) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Comuna)+"%")
	}
	if f.MinPrice != nil {
		conds = append(conds, "uf_min >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "uf_max <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.Status != "" {
		conds = append(conds, "LOWER(status) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Status)+"%")
	}
	if f.ProjectName != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.ProjectName)+"%")
	}
	if len(f.Dormitorios) > 0 {
		// Each requested count matches its typology token ("2D"); 0 means
		// studio/loft units.
		var ors []string
		for _, n := range f.Dormitorios {
			ors = append(ors, "UPPER(tipologias) LIKE ?")
			if n == 0 {
				args = append(args, "%STUDIO%")
			} else {
				args = append(args, fmt.Sprintf("%%%dD%%", n))
			}
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	query := "SELECT " + projectColumns + " FROM projects"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// GetBySlug returns a single project by slug, or ErrNotFound.
func (r *ProjectRepo) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE slug = ?", slug)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DistinctComunas returns the distinct comuna names present in the catalog,
// capped at maxComunaRows. Empty names are skipped.
func (r *ProjectRepo) DistinctComunas(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT comuna FROM projects ORDER BY comuna LIMIT ?", maxComunaRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query comunas: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var comunas []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan comuna: %w", err)
		}
		if strings.TrimSpace(c) != "" {
			comunas = append(comunas, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comunas: %w", err)
	}

	return comunas, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProject reads one project row, mapping NULL columns onto Go zero
// values (strings) or nil pointers (UF bounds).
func scanProject(s scanner) (Project, error) {
	var p Project
	var address, status, tipologias, slug, projectURL sql.NullString
	var ufMin, ufMax sql.NullFloat64

	err := s.Scan(&p.ID, &p.Name, &p.Comuna, &address, &ufMin, &ufMax,
		&status, &tipologias, &slug, &projectURL)
	if err == sql.ErrNoRows {
		return Project{}, err
	}
	if err != nil {
		return Project{}, fmt.Errorf("failed to scan project: %w", err)
	}

	p.Address = address.String
	p.Status = status.String
	p.Tipologias = tipologias.String
	p.Slug = slug.String
	p.ProjectURL = projectURL.String
	if ufMin.Valid {
		v := ufMin.Float64
		p.UFMin = &v
	}
	if ufMax.Valid {
		v := ufMax.Float64
		p.UFMax = &v
	}

	return p, nil
}
