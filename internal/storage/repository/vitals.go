package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// CreateVital вставляет новую запись самочувствия и возвращает её ID.
func (s *Storage) CreateVital(ctx context.Context, vital models.Vital) (int, error) {
	const op = "storage.CreateVital"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO vitals (username, user_uid, recorded_at, systolic,
			      diastolic, pulse, spo2, glucose, weight_kg)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		vital.Username, vital.UserUID, vital.RecordedAt, vital.Systolic,
		vital.Diastolic, vital.Pulse, vital.SpO2, vital.Glucose, vital.WeightKg).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveVital удаляет запись самочувствия пользователя по ID
// и возвращает количество удалённых строк.
func (s *Storage) RemoveVital(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveVital"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM vitals WHERE id = $1 AND username = $2`, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListVitals возвращает записи самочувствия пользователя с пагинацией,
// от новых к старым.
func (s *Storage) ListVitals(ctx context.Context, username string, limit, offset int) ([]*models.Vital, error) {
	const op = "storage.ListVitals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, user_uid, recorded_at, systolic, diastolic,
			      pulse, spo2, glucose, weight_kg
			  FROM vitals
			  WHERE username = $1
			  ORDER BY recorded_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Vital
	for rows.Next() {
		var v models.Vital
		if err = rows.Scan(&v.ID, &v.Username, &v.UserUID, &v.RecordedAt,
			&v.Systolic, &v.Diastolic, &v.Pulse, &v.SpO2, &v.Glucose, &v.WeightKg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListVitalsBetween возвращает записи самочувствия пользователя за
// полуинтервал [from, to) в хронологическом порядке. Используется как
// грубая выборка для графиков: точное включение по календарной дате
// выполняется фильтром окна поверх результата.
func (s *Storage) ListVitalsBetween(ctx context.Context, username string, from, to time.Time) ([]*models.Vital, error) {
	const op = "storage.ListVitalsBetween"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, user_uid, recorded_at, systolic, diastolic,
			      pulse, spo2, glucose, weight_kg
			  FROM vitals
			  WHERE username = $1 AND recorded_at >= $2 AND recorded_at < $3
			  ORDER BY recorded_at`
	rows, err := s.DB.QueryContext(ctx, query, username, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Vital
	for rows.Next() {
		var v models.Vital
		if err = rows.Scan(&v.ID, &v.Username, &v.UserUID, &v.RecordedAt,
			&v.Systolic, &v.Diastolic, &v.Pulse, &v.SpO2, &v.Glucose, &v.WeightKg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountVitals возвращает общее количество записей самочувствия.
func (s *Storage) CountVitals(ctx context.Context) (int, error) {
	const op = "storage.CountVitals"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vitals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// FindAbnormalVitalsSince возвращает сведения о записях с показателями вне
// безопасных пределов, созданных после момента since. Используется планировщиком
// уведомлений.
func (s *Storage) FindAbnormalVitalsSince(ctx context.Context, since time.Time) ([]*models.AlertInfo, error) {
	const op = "storage.FindAbnormalVitalsSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, v.username, v.recorded_at,
			      v.systolic, v.spo2, v.glucose
			  FROM vitals v
			  JOIN users u ON u.uid = v.user_uid
			  WHERE v.recorded_at >= $1
			    AND (v.systolic >= 180 OR v.spo2 < 90 OR v.glucose >= 16.7)
			  ORDER BY v.recorded_at`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AlertInfo
	for rows.Next() {
		var info models.AlertInfo
		var systolic, spo2 *int
		var glucose *float64
		if err = rows.Scan(&info.Email, &info.Username, &info.RecordedAt,
			&systolic, &spo2, &glucose); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		switch {
		case systolic != nil && *systolic >= 180:
			info.Metric = models.MetricPressure
			info.Value = float64(*systolic)
		case spo2 != nil && *spo2 < 90:
			info.Metric = models.MetricSpO2
			info.Value = float64(*spo2)
		case glucose != nil && *glucose >= 16.7:
			info.Metric = models.MetricGlucose
			info.Value = *glucose
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
