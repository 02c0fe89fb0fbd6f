package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/service"
)

// MockHomeworkService implements service.HomeworkService for testing
type MockHomeworkService struct {
	CreateFn func(ctx context.Context, params service.CreateHomeworkParams) (*domain.HomeworkAssignment, error)
	GetFn    func(ctx context.Context, player string, id uuid.UUID) (*domain.HomeworkAssignment, error)
	ReportFn func(ctx context.Context, id uuid.UUID, accessCode string) (*service.HomeworkReport, error)
}

var _ service.HomeworkService = (*MockHomeworkService)(nil)

// Create implements service.HomeworkService
func (m *MockHomeworkService) Create(ctx context.Context, params service.CreateHomeworkParams) (*domain.HomeworkAssignment, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return nil, nil
}

// Get implements service.HomeworkService
func (m *MockHomeworkService) Get(ctx context.Context, player string, id uuid.UUID) (*domain.HomeworkAssignment, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, player, id)
	}
	return nil, service.ErrHomeworkNotFound
}

// Report implements service.HomeworkService
func (m *MockHomeworkService) Report(ctx context.Context, id uuid.UUID, accessCode string) (*service.HomeworkReport, error) {
	if m.ReportFn != nil {
		return m.ReportFn(ctx, id, accessCode)
	}
	return nil, service.ErrHomeworkNotFound
}
