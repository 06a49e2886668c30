// Package services строит данные графиков здоровья: вычисляет окно дат
// по масштабу и смещению, отбирает записи и формирует подписи.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/health-tracker/internal/lib/period"
	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// VitalRangeRepository отдает записи самочувствия за интервал времени.
type VitalRangeRepository interface {
	// ListVitalsBetween возвращает записи пользователя в полуинтервале [from, to)
	// в хронологическом порядке.
	ListVitalsBetween(ctx context.Context, username string, from, to time.Time) ([]*models.Vital, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ChartService собирает данные графика по параметрам запроса.
type ChartService struct {
	repo  VitalRangeRepository
	cache Cache
	log   *slog.Logger
}

// NewChartService создает новый экземпляр ChartService.
func NewChartService(repo VitalRangeRepository, cache Cache, log *slog.Logger) *ChartService {
	return &ChartService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// BuildChart вычисляет окно дат и собирает точки графика для метрики.
// Опорный момент now передается явно: он фиксируется один раз на запрос,
// чтобы результат был детерминированным.
func (s *ChartService) BuildChart(ctx context.Context, username string, req models.DummyChartFilter, now time.Time) (*models.ChartData, error) {
	granularity, err := period.ParseGranularity(req.Granularity)
	if err != nil {
		return nil, fmt.Errorf("invalid granularity: %w", err)
	}

	rng := period.CalcRange(granularity, req.Offset, now)

	cacheKey := fmt.Sprintf("chart:%s:%s:%s:%d:%s",
		username, req.Metric, granularity, req.Offset, period.DateOnly(now).Format("2006-01-02"))
	var cached *models.ChartData
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read chart cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	// Выборка из базы грубая, по полуинтервалу; точную фильтрацию
	// по календарным датам делает FilterByRange.
	vitals, err := s.repo.ListVitalsBetween(ctx, username, rng.Start, rng.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	vitals = period.FilterByRange(vitals, rng)

	points := make([]models.ChartPoint, 0, len(vitals))
	for _, v := range vitals {
		value, value2, ok := metricValues(req.Metric, v)
		if !ok {
			continue // запись без выбранной метрики не рисуется
		}
		points = append(points, models.ChartPoint{
			Date:   v.RecordedAt,
			Label:  period.AxisLabel(v.RecordedAt, granularity),
			Value:  value,
			Value2: value2,
		})
	}

	title, ok := period.Title(rng, granularity)
	if !ok {
		s.log.Warn("no title format for granularity", slog.String("granularity", string(granularity)))
	}

	data := &models.ChartData{
		Metric:      req.Metric,
		Granularity: string(granularity),
		Offset:      req.Offset,
		Range:       rng,
		Title:       title,
		Points:      points,
	}

	if err := s.cache.Set(cacheKey, data, 10*time.Minute); err != nil {
		s.log.Warn("failed to cache chart", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return data, nil
}

// metricValues извлекает значение метрики из записи. Для давления
// возвращается пара систолическое/диастолическое.
func metricValues(metric string, v *models.Vital) (float64, *float64, bool) {
	switch metric {
	case models.MetricPressure:
		if v.Systolic == nil {
			return 0, nil, false
		}
		var diastolic *float64
		if v.Diastolic != nil {
			d := float64(*v.Diastolic)
			diastolic = &d
		}
		return float64(*v.Systolic), diastolic, true
	case models.MetricSpO2:
		if v.SpO2 == nil {
			return 0, nil, false
		}
		return float64(*v.SpO2), nil, true
	case models.MetricGlucose:
		if v.Glucose == nil {
			return 0, nil, false
		}
		return *v.Glucose, nil, true
	case models.MetricWeight:
		if v.WeightKg == nil {
			return 0, nil, false
		}
		return *v.WeightKg, nil, true
	}
	return 0, nil, false
}
