// Package services собирает сводную статистику для панели администратора.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// CounterRepository отдает счетчики по таблицам дневника.
type CounterRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountVitals(ctx context.Context) (int, error)
	CountMeals(ctx context.Context) (int, error)
	CountDiseases(ctx context.Context) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// StatsService считает сводку по всем пользователям. Доступ только для
// роли admin контролируется на уровне HTTP.
type StatsService struct {
	repo  CounterRepository
	cache Cache
	log   *slog.Logger
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo CounterRepository, cache Cache, log *slog.Logger) *StatsService {
	return &StatsService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const statsCacheKey = "stats:summary"

// Summary возвращает количество пользователей и записей каждого типа.
func (s *StatsService) Summary(ctx context.Context) (*models.StatsSummary, error) {
	var cached *models.StatsSummary
	found, err := s.cache.Get(statsCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read stats cache", slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	vitals, err := s.repo.CountVitals(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.repo.CountMeals(ctx)
	if err != nil {
		return nil, err
	}
	diseases, err := s.repo.CountDiseases(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.StatsSummary{
		Users:    users,
		Vitals:   vitals,
		Meals:    meals,
		Diseases: diseases,
	}

	if err := s.cache.Set(statsCacheKey, summary, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache stats", slog.Any("err", err))
	}
	return summary, nil
}
