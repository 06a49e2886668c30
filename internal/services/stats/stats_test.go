package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/health-tracker/internal/models"
	services "github.com/magabrotheeeer/health-tracker/internal/services/stats"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountVitals(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountMeals(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountDiseases(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatsService_Summary(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewStatsService(repo, cache, testLogger())

	cache.On("Get", "stats:summary", mock.Anything).Return(false, nil).Once()
	repo.On("CountUsers", mock.Anything).Return(12, nil).Once()
	repo.On("CountVitals", mock.Anything).Return(340, nil).Once()
	repo.On("CountMeals", mock.Anything).Return(85, nil).Once()
	repo.On("CountDiseases", mock.Anything).Return(7, nil).Once()
	cache.On("Set", "stats:summary", mock.Anything, 5*time.Minute).Return(nil).Once()

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.StatsSummary{Users: 12, Vitals: 340, Meals: 85, Diseases: 7}, got)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestStatsService_Summary_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewStatsService(repo, cache, testLogger())

	cachedSummary := &models.StatsSummary{Users: 1, Vitals: 2, Meals: 3, Diseases: 4}
	cache.On("Get", "stats:summary", mock.Anything).
		Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.StatsSummary)
			*ptr = cachedSummary
		}).Return(true, nil).Once()

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cachedSummary, got)

	repo.AssertNotCalled(t, "CountUsers")
}

func TestStatsService_Summary_RepoError(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewStatsService(repo, cache, testLogger())

	cache.On("Get", "stats:summary", mock.Anything).Return(false, nil).Once()
	repo.On("CountUsers", mock.Anything).Return(0, errors.New("db error")).Once()

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
}
