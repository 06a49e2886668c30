package models

import (
	"time"

	"github.com/magabrotheeeer/health-tracker/internal/lib/period"
)

// DummyChartFilter представляет параметры запроса данных графика,
// приходящие из query-строки. Отрицательные смещения отклоняются на
// границе HTTP — ядро вычисления окон их не проверяет.
type DummyChartFilter struct {
	Metric      string `json:"metric" validate:"required,oneof=pressure spo2 glucose weight"` // Метрика графика
	Granularity string `json:"granularity" validate:"required,oneof=week month 6months year"` // Масштаб окна
	Offset      int    `json:"offset" validate:"gte=0"`                                       // Сколько периодов назад
}

// ChartPoint представляет одну точку графика.
type ChartPoint struct {
	Date   time.Time `json:"date"`             // Момент измерения
	Label  string    `json:"label"`            // Подпись оси для точки
	Value  float64   `json:"value"`            // Значение метрики
	Value2 *float64  `json:"value2,omitempty"` // Второе значение (диастолическое давление)
}

// ChartData представляет готовые данные графика для слоя отображения.
type ChartData struct {
	Metric      string       `json:"metric"`      // Метрика графика
	Granularity string       `json:"granularity"` // Масштаб окна
	Offset      int          `json:"offset"`      // Смещение окна
	Range       period.Range `json:"range"`       // Вычисленное окно дат
	Title       string       `json:"title"`       // Заголовок графика
	Points      []ChartPoint `json:"points"`      // Точки в исходном порядке записей
}

// StatsSummary представляет счётчики для административной панели.
type StatsSummary struct {
	Users    int `json:"users"`    // Количество пользователей
	Vitals   int `json:"vitals"`   // Количество записей самочувствия
	Meals    int `json:"meals"`    // Количество записей о еде
	Diseases int `json:"diseases"` // Количество записей о заболеваниях
}
