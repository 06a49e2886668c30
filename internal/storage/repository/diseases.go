package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// CreateDisease вставляет новую запись о заболевании и возвращает её ID.
func (s *Storage) CreateDisease(ctx context.Context, disease models.Disease) (int, error) {
	const op = "storage.CreateDisease"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO diseases (username, user_uid, name, diagnosed_at,
			      recovered_at, memo)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		disease.Username, disease.UserUID, disease.Name, disease.DiagnosedAt,
		disease.RecoveredAt, disease.Memo).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveDisease удаляет запись о заболевании пользователя по ID
// и возвращает количество удалённых строк.
func (s *Storage) RemoveDisease(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveDisease"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM diseases WHERE id = $1 AND username = $2`, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListDiseases возвращает записи о заболеваниях пользователя с пагинацией,
// от новых диагнозов к старым.
func (s *Storage) ListDiseases(ctx context.Context, username string, limit, offset int) ([]*models.Disease, error) {
	const op = "storage.ListDiseases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, user_uid, name, diagnosed_at, recovered_at, memo
			  FROM diseases
			  WHERE username = $1
			  ORDER BY diagnosed_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Disease
	for rows.Next() {
		var d models.Disease
		var recoveredAt sql.NullTime
		if err = rows.Scan(&d.ID, &d.Username, &d.UserUID, &d.Name,
			&d.DiagnosedAt, &recoveredAt, &d.Memo); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if recoveredAt.Valid {
			d.RecoveredAt = &recoveredAt.Time
		}
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountDiseases возвращает общее количество записей о заболеваниях.
func (s *Storage) CountDiseases(ctx context.Context) (int, error) {
	const op = "storage.CountDiseases"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM diseases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
