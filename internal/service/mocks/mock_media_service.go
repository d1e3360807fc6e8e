package mocks

import (
	"context"
	"io"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, requestedPath string) (*service.UploadResult, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size, requestedPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockMediaService) Fetch(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockMediaService) FetchRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, storage.RangeInfo, error) {
	args := m.Called(ctx, key, start, end)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.RangeInfo), args.Error(2)
}

func (m *MockMediaService) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockMediaService) List(ctx context.Context, limit, offset int) (*service.MediaListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MediaListResult), args.Error(1)
}

func (m *MockMediaService) Describe(ctx context.Context, key string) (*model.MediaObject, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaObject), args.Error(1)
}
