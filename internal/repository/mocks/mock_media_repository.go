package mocks

import (
	"context"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, obj *model.MediaObject) (*model.MediaObject, error) {
	args := m.Called(ctx, obj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaObject), args.Error(1)
}

func (m *MockMediaRepository) FindByPath(ctx context.Context, path string) (*model.MediaObject, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaObject), args.Error(1)
}

func (m *MockMediaRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MediaObject], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.MediaObject]), args.Error(1)
}

func (m *MockMediaRepository) DeleteByPath(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
