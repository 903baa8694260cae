package mocks

import (
	"context"

	"educme-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) List(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Program), args.Error(1)
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id string) (*model.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Program), args.Error(1)
}
