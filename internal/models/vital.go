package models

import "time"

// Поддерживаемые метрики графиков по записям самочувствия.
const (
	MetricPressure = "pressure"
	MetricSpO2     = "spo2"
	MetricGlucose  = "glucose"
	MetricWeight   = "weight"
)

// Vital представляет одну запись показателей самочувствия пользователя.
// Поля метрик опциональны: запись может содержать только давление,
// только сатурацию и так далее.
type Vital struct {
	ID         int       // ID записи
	Username   string    // Имя пользователя, которому принадлежит запись
	UserUID    string    // UID пользователя
	RecordedAt time.Time // Момент измерения
	Systolic   *int      // Систолическое давление, мм рт. ст.
	Diastolic  *int      // Диастолическое давление, мм рт. ст.
	Pulse      *int      // Пульс, уд/мин
	SpO2       *int      // Сатурация кислорода, %
	Glucose    *float64  // Глюкоза крови, ммоль/л
	WeightKg   *float64  // Вес, кг
}

// RecordDate возвращает момент измерения для фильтрации по календарной дате.
func (v *Vital) RecordDate() time.Time { return v.RecordedAt }

// DummyVital используется для приёма записи измерения из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02 15:04, метрики валидируются
// на физиологически осмысленные диапазоны.
type DummyVital struct {
	RecordedAt string   `json:"recorded_at" validate:"required"`                                 // Момент измерения в формате 2006-01-02 15:04
	Systolic   *int     `json:"systolic,omitempty" validate:"omitempty,gte=50,lte=300"`    // Систолическое давление
	Diastolic  *int     `json:"diastolic,omitempty" validate:"omitempty,gte=30,lte=200"`   // Диастолическое давление
	Pulse      *int     `json:"pulse,omitempty" validate:"omitempty,gte=20,lte=250"`       // Пульс
	SpO2       *int     `json:"spo2,omitempty" validate:"omitempty,gte=50,lte=100"`        // Сатурация
	Glucose    *float64 `json:"glucose,omitempty" validate:"omitempty,gt=0,lte=50"`        // Глюкоза
	WeightKg   *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0,lte=500"`     // Вес
}

// AlertInfo описывает сообщение о выходе показателя за безопасные пределы,
// публикуемое в очередь уведомлений.
type AlertInfo struct {
	Email      string    `json:"email"`       // Почта получателя
	Username   string    `json:"username"`    // Имя пользователя
	Metric     string    `json:"metric"`      // Какая метрика вышла за пределы
	Value      float64   `json:"value"`       // Зафиксированное значение
	RecordedAt time.Time `json:"recorded_at"` // Момент измерения
}
