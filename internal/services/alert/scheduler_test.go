package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) FindAbnormalVitalsSince(ctx context.Context, since time.Time) ([]*models.AlertInfo, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AlertInfo), args.Error(1)
}

func TestSchedulerService_runFindAbnormalVitals(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockAlertRepository)
	}{
		{
			name: "no abnormal vitals found",
			setupMocks: func(r *MockAlertRepository) {
				r.On("FindAbnormalVitalsSince", mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*models.AlertInfo{}, nil).Once()
			},
		},
		{
			name: "repository error only logged",
			setupMocks: func(r *MockAlertRepository) {
				r.On("FindAbnormalVitalsSince", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAlertRepository)
			service := NewSchedulerService(repo, time.Hour, newNoopLogger())

			tt.setupMocks(repo)

			service.runFindAbnormalVitals(context.Background(), nil)

			repo.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_ScanWindowMatchesInterval(t *testing.T) {
	repo := new(MockAlertRepository)
	interval := 30 * time.Minute
	service := NewSchedulerService(repo, interval, newNoopLogger())

	repo.On("FindAbnormalVitalsSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) < interval+time.Minute && time.Since(since) > interval-time.Minute
	})).Return([]*models.AlertInfo{}, nil).Once()

	service.runFindAbnormalVitals(context.Background(), nil)

	repo.AssertExpectations(t)
}

func TestNewSchedulerService(t *testing.T) {
	repo := new(MockAlertRepository)
	logger := newNoopLogger()

	service := NewSchedulerService(repo, time.Hour, logger)

	assert.NotNil(t, service)
	assert.Equal(t, repo, service.repo)
	assert.Equal(t, time.Hour, service.interval)
	assert.Equal(t, logger, service.log)
}
