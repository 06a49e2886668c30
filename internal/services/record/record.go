// Package services содержит бизнес-логику дневника здоровья: записи самочувствия, еды и заболеваний.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// VitalRepository определяет методы для работы с записями самочувствия в хранилище.
type VitalRepository interface {
	// CreateVital добавляет новую запись и возвращает её ID.
	CreateVital(ctx context.Context, vital models.Vital) (int, error)
	// RemoveVital удаляет запись пользователя по ID и возвращает количество удалённых строк.
	RemoveVital(ctx context.Context, username string, id int) (int, error)
	// ListVitals возвращает записи пользователя с пагинацией, свежие первыми.
	ListVitals(ctx context.Context, username string, limit, offset int) ([]*models.Vital, error)
}

// MealRepository определяет методы для работы с записями о еде в хранилище.
type MealRepository interface {
	CreateMeal(ctx context.Context, meal models.Meal) (int, error)
	RemoveMeal(ctx context.Context, username string, id int) (int, error)
	ListMeals(ctx context.Context, username string, limit, offset int) ([]*models.Meal, error)
}

// DiseaseRepository определяет методы для работы с записями о заболеваниях в хранилище.
type DiseaseRepository interface {
	CreateDisease(ctx context.Context, disease models.Disease) (int, error)
	RemoveDisease(ctx context.Context, username string, id int) (int, error)
	ListDiseases(ctx context.Context, username string, limit, offset int) ([]*models.Disease, error)
}

// UserLookup возвращает данные пользователя для адресации уведомлений.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Repository объединяет хранилища всех типов записей дневника.
type Repository interface {
	VitalRepository
	MealRepository
	DiseaseRepository
	UserLookup
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// AlertPublisher публикует уведомление о критическом показателе.
// Публикация не должна блокировать сохранение записи.
type AlertPublisher interface {
	PublishAlert(alert models.AlertInfo) error
}

// RecordService реализует бизнес-логику дневника здоровья, включая кеширование.
type RecordService struct {
	repo      Repository
	cache     Cache
	publisher AlertPublisher // может быть nil, если воркер уведомлений не подключен
	log       *slog.Logger
}

// NewRecordService создает новый экземпляр RecordService.
func NewRecordService(repo Repository, cache Cache, publisher AlertPublisher, log *slog.Logger) *RecordService {
	return &RecordService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// CreateVital создает запись самочувствия и инвалидирует кеш списка.
func (s *RecordService) CreateVital(ctx context.Context, username, userUID string, req models.DummyVital) (int, error) {
	recordedAt, err := time.Parse("2006-01-02 15:04", req.RecordedAt)
	if err != nil {
		return 0, fmt.Errorf("invalid recorded_at: %w", err)
	}

	vital := models.Vital{
		Username:   username,
		UserUID:    userUID,
		RecordedAt: recordedAt,
		Systolic:   req.Systolic,
		Diastolic:  req.Diastolic,
		Pulse:      req.Pulse,
		SpO2:       req.SpO2,
		Glucose:    req.Glucose,
		WeightKg:   req.WeightKg,
	}

	id, err := s.repo.CreateVital(ctx, vital)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new vital record", slog.Int("id", id))

	cacheKey := fmt.Sprintf("vitals:%s", username)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.notifyIfAbnormal(ctx, vital)

	return id, nil
}

// ListVitals возвращает записи самочувствия пользователя, используя кеш для первой страницы.
func (s *RecordService) ListVitals(ctx context.Context, username string, limit, offset int) ([]*models.Vital, error) {
	cacheKey := fmt.Sprintf("vitals:%s", username)
	if offset == 0 {
		var cached []*models.Vital
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			return nil, err
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	vitals, err := s.repo.ListVitals(ctx, username, limit, offset)
	if err != nil {
		return nil, err
	}

	if offset == 0 {
		if err := s.cache.Set(cacheKey, vitals, time.Hour); err != nil {
			s.log.Warn("failed to cache vitals", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return vitals, nil
}

// RemoveVital удаляет запись самочувствия и инвалидирует кеш списка.
func (s *RecordService) RemoveVital(ctx context.Context, username string, id int) (int, error) {
	cacheKey := fmt.Sprintf("vitals:%s", username)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveVital(ctx, username, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateMeal создает запись о приёме пищи.
func (s *RecordService) CreateMeal(ctx context.Context, username, userUID string, req models.DummyMeal) (int, error) {
	recordedAt, err := time.Parse("2006-01-02 15:04", req.RecordedAt)
	if err != nil {
		return 0, fmt.Errorf("invalid recorded_at: %w", err)
	}

	meal := models.Meal{
		Username:    username,
		UserUID:     userUID,
		RecordedAt:  recordedAt,
		MealType:    req.MealType,
		Description: req.Description,
		Calories:    req.Calories,
	}

	id, err := s.repo.CreateMeal(ctx, meal)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new meal record", slog.Int("id", id))

	cacheKey := fmt.Sprintf("meals:%s", username)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return id, nil
}

// ListMeals возвращает записи о еде пользователя, используя кеш для первой страницы.
func (s *RecordService) ListMeals(ctx context.Context, username string, limit, offset int) ([]*models.Meal, error) {
	cacheKey := fmt.Sprintf("meals:%s", username)
	if offset == 0 {
		var cached []*models.Meal
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			return nil, err
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	meals, err := s.repo.ListMeals(ctx, username, limit, offset)
	if err != nil {
		return nil, err
	}

	if offset == 0 {
		if err := s.cache.Set(cacheKey, meals, time.Hour); err != nil {
			s.log.Warn("failed to cache meals", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return meals, nil
}

// RemoveMeal удаляет запись о еде и инвалидирует кеш списка.
func (s *RecordService) RemoveMeal(ctx context.Context, username string, id int) (int, error) {
	cacheKey := fmt.Sprintf("meals:%s", username)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveMeal(ctx, username, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateDisease создает запись о заболевании.
func (s *RecordService) CreateDisease(ctx context.Context, username, userUID string, req models.DummyDisease) (int, error) {
	diagnosedAt, err := time.Parse("2006-01-02", req.DiagnosedAt)
	if err != nil {
		return 0, fmt.Errorf("invalid diagnosed_at: %w", err)
	}

	var recoveredAt *time.Time
	if req.RecoveredAt != "" {
		parsed, err := time.Parse("2006-01-02", req.RecoveredAt)
		if err != nil {
			return 0, fmt.Errorf("invalid recovered_at: %w", err)
		}
		if parsed.Before(diagnosedAt) {
			return 0, fmt.Errorf("recovery date must not be earlier than diagnosis date")
		}
		recoveredAt = &parsed
	}

	disease := models.Disease{
		Username:    username,
		UserUID:     userUID,
		Name:        req.Name,
		DiagnosedAt: diagnosedAt,
		RecoveredAt: recoveredAt,
		Memo:        req.Memo,
	}

	id, err := s.repo.CreateDisease(ctx, disease)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new disease record", slog.Int("id", id))

	cacheKey := fmt.Sprintf("diseases:%s", username)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return id, nil
}

// ListDiseases возвращает записи о заболеваниях пользователя, используя кеш для первой страницы.
func (s *RecordService) ListDiseases(ctx context.Context, username string, limit, offset int) ([]*models.Disease, error) {
	cacheKey := fmt.Sprintf("diseases:%s", username)
	if offset == 0 {
		var cached []*models.Disease
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			return nil, err
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	diseases, err := s.repo.ListDiseases(ctx, username, limit, offset)
	if err != nil {
		return nil, err
	}

	if offset == 0 {
		if err := s.cache.Set(cacheKey, diseases, time.Hour); err != nil {
			s.log.Warn("failed to cache diseases", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return diseases, nil
}

// RemoveDisease удаляет запись о заболевании и инвалидирует кеш списка.
func (s *RecordService) RemoveDisease(ctx context.Context, username string, id int) (int, error) {
	cacheKey := fmt.Sprintf("diseases:%s", username)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveDisease(ctx, username, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// notifyIfAbnormal публикует уведомление, если показатель вышел за критические пределы.
// Ошибка публикации не препятствует сохранению записи. Уведомление без адреса
// получателя недоставляемо, поэтому при неизвестной почте публикация пропускается.
func (s *RecordService) notifyIfAbnormal(ctx context.Context, vital models.Vital) {
	if s.publisher == nil {
		return
	}

	var metric string
	var value float64
	switch {
	case vital.Systolic != nil && *vital.Systolic >= 180:
		metric, value = models.MetricPressure, float64(*vital.Systolic)
	case vital.SpO2 != nil && *vital.SpO2 < 90:
		metric, value = models.MetricSpO2, float64(*vital.SpO2)
	case vital.Glucose != nil && *vital.Glucose >= 16.7:
		metric, value = models.MetricGlucose, *vital.Glucose
	default:
		return
	}

	user, err := s.repo.GetUserByUsername(ctx, vital.Username)
	if err != nil {
		s.log.Warn("failed to resolve user email for alert",
			slog.String("username", vital.Username), slog.Any("err", err))
		return
	}
	if user.Email == "" {
		s.log.Warn("user has no email, skipping alert",
			slog.String("username", vital.Username))
		return
	}

	alert := models.AlertInfo{
		Email:      user.Email,
		Username:   vital.Username,
		Metric:     metric,
		Value:      value,
		RecordedAt: vital.RecordedAt,
	}
	if err := s.publisher.PublishAlert(alert); err != nil {
		s.log.Warn("failed to publish abnormal vital alert",
			slog.String("metric", metric), slog.Any("err", err))
	}
}
