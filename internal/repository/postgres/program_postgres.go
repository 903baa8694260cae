package postgres

import (
	"context"
	"database/sql"

	"educme-api/internal/model"
	"educme-api/internal/repository"
)

// ProgramPostgres is a PostgreSQL implementation of repository.ProgramRepository.
type ProgramPostgres struct {
	db *sql.DB
}

// NewProgramPostgres creates a new ProgramPostgres repository.
func NewProgramPostgres(db *sql.DB) *ProgramPostgres {
	return &ProgramPostgres{db: db}
}

var _ repository.ProgramRepository = (*ProgramPostgres)(nil)

// List returns all programs ordered by name.
func (r *ProgramPostgres) List(ctx context.Context) ([]model.Program, error) {
	const q = `
		SELECT id, name, created_at
		FROM programs
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Program, 0)
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single program by its ID.
func (r *ProgramPostgres) FindByID(ctx context.Context, id string) (*model.Program, error) {
	const q = `
		SELECT id, name, created_at
		FROM programs
		WHERE id = $1
	`
	var p model.Program
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
