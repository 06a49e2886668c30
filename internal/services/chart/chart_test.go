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
	services "github.com/magabrotheeeer/health-tracker/internal/services/chart"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) ListVitalsBetween(ctx context.Context, username string, from, to time.Time) ([]*models.Vital, error) {
	args := m.Called(ctx, username, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vital), args.Error(1)
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

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestChartService_BuildChart_Pressure(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewChartService(repo, cache, testLogger())

	// 2024-06-15 — суббота, неделя 2024-06-09..2024-06-15
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	vitals := []*models.Vital{
		{ID: 1, RecordedAt: time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC), Systolic: intPtr(120), Diastolic: intPtr(80)},
		{ID: 2, RecordedAt: time.Date(2024, 6, 12, 21, 0, 0, 0, time.UTC), Systolic: intPtr(130), Diastolic: intPtr(85)},
		// запись без давления пропускается
		{ID: 3, RecordedAt: time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC), WeightKg: floatPtr(71.0)},
	}

	cache.On("Get", "chart:testuser:pressure:week:0:2024-06-15", mock.Anything).Return(false, nil).Once()
	repo.On("ListVitalsBetween", mock.Anything, "testuser",
		time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)).Return(vitals, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, 10*time.Minute).Return(nil).Once()

	got, err := svc.BuildChart(context.Background(), "testuser",
		models.DummyChartFilter{Metric: "pressure", Granularity: "week", Offset: 0}, now)
	require.NoError(t, err)

	assert.Equal(t, "pressure", got.Metric)
	assert.Equal(t, "6/9 - 6/15", got.Title)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), got.Range.Start)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got.Range.End)

	require.Len(t, got.Points, 2)
	assert.Equal(t, "6/9", got.Points[0].Label)
	assert.Equal(t, 120.0, got.Points[0].Value)
	require.NotNil(t, got.Points[0].Value2)
	assert.Equal(t, 80.0, *got.Points[0].Value2)
	assert.Equal(t, "6/12", got.Points[1].Label)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestChartService_BuildChart_SixMonthsLabels(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewChartService(repo, cache, testLogger())

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	vitals := []*models.Vital{
		{ID: 1, RecordedAt: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), WeightKg: floatPtr(73.2)},
		{ID: 2, RecordedAt: time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC), WeightKg: floatPtr(71.8)},
	}

	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("ListVitalsBetween", mock.Anything, "testuser",
		time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Return(vitals, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.BuildChart(context.Background(), "testuser",
		models.DummyChartFilter{Metric: "weight", Granularity: "6months", Offset: 0}, now)
	require.NoError(t, err)

	assert.Equal(t, "Dec 2023 - May 2024", got.Title)
	require.Len(t, got.Points, 2)
	assert.Equal(t, "Jan", got.Points[0].Label)
	assert.Equal(t, "Apr", got.Points[1].Label)
	assert.Equal(t, 73.2, got.Points[0].Value)
	assert.Nil(t, got.Points[0].Value2)
}

func TestChartService_BuildChart_FiltersOutsideRange(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewChartService(repo, cache, testLogger())

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	// запись последнего дня окна поздно вечером должна остаться
	vitals := []*models.Vital{
		{ID: 1, RecordedAt: time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC), SpO2: intPtr(97)},
	}

	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("ListVitalsBetween", mock.Anything, "testuser", mock.Anything, mock.Anything).Return(vitals, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.BuildChart(context.Background(), "testuser",
		models.DummyChartFilter{Metric: "spo2", Granularity: "week", Offset: 0}, now)
	require.NoError(t, err)
	require.Len(t, got.Points, 1)
	assert.Equal(t, 97.0, got.Points[0].Value)
}

func TestChartService_BuildChart_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewChartService(repo, cache, testLogger())

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	cachedData := &models.ChartData{Metric: "glucose", Granularity: "week", Title: "6/9 - 6/15"}
	cache.On("Get", "chart:testuser:glucose:week:0:2024-06-15", mock.Anything).
		Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.ChartData)
			*ptr = cachedData
		}).Return(true, nil).Once()

	got, err := svc.BuildChart(context.Background(), "testuser",
		models.DummyChartFilter{Metric: "glucose", Granularity: "week", Offset: 0}, now)
	require.NoError(t, err)
	assert.Equal(t, cachedData, got)

	repo.AssertNotCalled(t, "ListVitalsBetween")
}

func TestChartService_BuildChart_Errors(t *testing.T) {
	t.Run("unknown granularity", func(t *testing.T) {
		svc := services.NewChartService(new(RepoMock), new(CacheMock), testLogger())

		_, err := svc.BuildChart(context.Background(), "testuser",
			models.DummyChartFilter{Metric: "weight", Granularity: "decade", Offset: 0}, time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid granularity")
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := services.NewChartService(repo, cache, testLogger())

		cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
		repo.On("ListVitalsBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db error")).Once()

		_, err := svc.BuildChart(context.Background(), "testuser",
			models.DummyChartFilter{Metric: "weight", Granularity: "week", Offset: 0}, time.Now())
		require.Error(t, err)
	})
}
