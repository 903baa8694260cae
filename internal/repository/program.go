package repository

import (
	"context"

	"educme-api/internal/model"
)

// ProgramRepository defines read-only access to degree programs.
// Programs are managed outside this service.
type ProgramRepository interface {
	// List returns all programs.
	List(ctx context.Context) ([]model.Program, error)

	// FindByID returns a program by its ID. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Program, error)
}
