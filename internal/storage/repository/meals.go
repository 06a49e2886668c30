package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// CreateMeal вставляет новую запись о еде и возвращает её ID.
func (s *Storage) CreateMeal(ctx context.Context, meal models.Meal) (int, error) {
	const op = "storage.CreateMeal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO meals (username, user_uid, recorded_at, meal_type,
			      description, calories)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		meal.Username, meal.UserUID, meal.RecordedAt, meal.MealType,
		meal.Description, meal.Calories).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveMeal удаляет запись о еде пользователя по ID
// и возвращает количество удалённых строк.
func (s *Storage) RemoveMeal(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveMeal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM meals WHERE id = $1 AND username = $2`, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListMeals возвращает записи о еде пользователя с пагинацией, от новых к старым.
func (s *Storage) ListMeals(ctx context.Context, username string, limit, offset int) ([]*models.Meal, error) {
	const op = "storage.ListMeals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, user_uid, recorded_at, meal_type, description, calories
			  FROM meals
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

	var result []*models.Meal
	for rows.Next() {
		var m models.Meal
		if err = rows.Scan(&m.ID, &m.Username, &m.UserUID, &m.RecordedAt,
			&m.MealType, &m.Description, &m.Calories); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountMeals возвращает общее количество записей о еде.
func (s *Storage) CountMeals(ctx context.Context) (int, error) {
	const op = "storage.CountMeals"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM meals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
