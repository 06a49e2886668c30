package chart

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/health-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/health-tracker/internal/lib/period"
	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// MockService реализует интерфейс chart.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) BuildChart(ctx context.Context, username string, req models.DummyChartFilter, now time.Time) (*models.ChartData, error) {
	args := m.Called(ctx, username, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChartData), args.Error(1)
}

func newChartRequest(metric, query string, username string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/charts/"+metric+query, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("metric", metric)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if username != "" {
		ctx = context.WithValue(ctx, middlewarectx.User, username)
	}
	return req.WithContext(ctx)
}

func TestChartHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fixedNow := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	chartData := &models.ChartData{
		Metric:      "pressure",
		Granularity: "week",
		Offset:      0,
		Range: period.Range{
			Start: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		Title: "6/9 - 6/15",
		Points: []models.ChartPoint{
			{Date: time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC), Label: "6/12", Value: 120},
		},
	}

	tests := []struct {
		name           string
		metric         string
		query          string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное построение графика",
			metric:   "pressure",
			query:    "?granularity=week&offset=0",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("BuildChart", mock.Anything, "testuser",
					models.DummyChartFilter{Metric: "pressure", Granularity: "week", Offset: 0},
					fixedNow).Return(chartData, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"6/9 - 6/15"`,
		},
		{
			name:           "отрицательное смещение отклоняется",
			metric:         "pressure",
			query:          "?granularity=week&offset=-1",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Offset must be greater than or equal to 0`,
		},
		{
			name:           "нечисловое смещение",
			metric:         "pressure",
			query:          "?granularity=week&offset=abc",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `invalid offset`,
		},
		{
			name:           "неизвестный масштаб",
			metric:         "pressure",
			query:          "?granularity=decade",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Granularity must be one of`,
		},
		{
			name:           "неизвестная метрика",
			metric:         "cholesterol",
			query:          "?granularity=week",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Metric must be one of`,
		},
		{
			name:           "нет пользователя в контексте",
			metric:         "pressure",
			query:          "?granularity=week",
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:     "ошибка сервиса",
			metric:   "pressure",
			query:    "?granularity=week",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("BuildChart", mock.Anything, "testuser", mock.Anything, fixedNow).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to build chart`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)
			handler.now = func() time.Time { return fixedNow }

			req := newChartRequest(tt.metric, tt.query, tt.username)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
