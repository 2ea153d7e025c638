package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockExporter is a mock implementation of the Exporter interface
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, title string, data [][]interface{}) (string, error) {
	args := m.Called(ctx, title, data)
	return args.String(0), args.Error(1)
}
