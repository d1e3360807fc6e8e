package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTranscoder struct {
	mock.Mock
}

func (m *MockTranscoder) Transcode(ctx context.Context, src, dst string) error {
	args := m.Called(ctx, src, dst)
	return args.Error(0)
}
