package service

import (
	"context"
	"database/sql"
	"errors"

	"educme-api/internal/model"
	"educme-api/internal/repository"
)

// ProgramService exposes read access to degree programs.
type ProgramService interface {
	List(ctx context.Context) ([]model.Program, error)
	Get(ctx context.Context, id string) (*model.Program, error)
}

type programService struct {
	repo repository.ProgramRepository
}

// NewProgramService constructs a new ProgramService.
func NewProgramService(repo repository.ProgramRepository) ProgramService {
	return &programService{repo: repo}
}

func (s *programService) List(ctx context.Context) ([]model.Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, &RecordStoreFailure{Op: "list", Err: err}
	}
	return programs, nil
}

func (s *programService) Get(ctx context.Context, id string) (*model.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &RecordStoreFailure{Op: "get", Err: err}
	}
	return program, nil
}
