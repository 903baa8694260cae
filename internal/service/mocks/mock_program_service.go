package mocks

import (
	"context"

	"educme-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockProgramService struct {
	mock.Mock
}

func (m *MockProgramService) List(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Program), args.Error(1)
}

func (m *MockProgramService) Get(ctx context.Context, id string) (*model.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Program), args.Error(1)
}
