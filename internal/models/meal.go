package models

import "time"

// Meal представляет запись о приёме пищи.
type Meal struct {
	ID          int       // ID записи
	Username    string    // Имя пользователя, которому принадлежит запись
	UserUID     string    // UID пользователя
	RecordedAt  time.Time // Момент приёма пищи
	MealType    string    // Тип: breakfast, lunch, dinner, snack
	Description string    // Что было съедено
	Calories    *int      // Калорийность, ккал (если известна)
}

// RecordDate возвращает момент приёма пищи для фильтрации по календарной дате.
func (m *Meal) RecordDate() time.Time { return m.RecordedAt }

// DummyMeal используется для приёма записи о еде из JSON-запроса.
type DummyMeal struct {
	RecordedAt  string `json:"recorded_at" validate:"required"`                                  // Момент приёма пищи в формате 2006-01-02 15:04
	MealType    string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"` // Тип приёма пищи
	Description string `json:"description" validate:"required,max=500"`                        // Описание
	Calories    *int   `json:"calories,omitempty" validate:"omitempty,gt=0,lte=10000"`         // Калорийность
}
