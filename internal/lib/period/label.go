package period

import (
	"fmt"
	"time"
)

const (
	layoutDay       = "1/2"      // месяц/день без ведущих нулей
	layoutYearMonth = "Jan 2006" // месяц и год
	layoutMonth     = "Jan"      // только месяц
)

// axisLayouts — фиксированная таблица форматов подписи точки по масштабу.
// Новый масштаб требует явной записи здесь, а не вычисляемого правила.
var axisLayouts = map[Granularity]string{
	Week:      layoutDay,
	Month:     layoutDay,
	SixMonths: layoutMonth,
	Year:      layoutDay,
}

// Title форматирует заголовок окна для масштаба g.
// Для недельных и месячных окон — "M/D - M/D", для полугодовых и
// годовых — "Mon YYYY - Mon YYYY". Для неизвестного масштаба
// возвращает ok == false, вызывающий решает, как это логировать.
func Title(r Range, g Granularity) (string, bool) {
	switch g {
	case Week, Month:
		return fmt.Sprintf("%s - %s", r.Start.Format(layoutDay), r.End.Format(layoutDay)), true
	case SixMonths, Year:
		return fmt.Sprintf("%s - %s", r.Start.Format(layoutYearMonth), r.End.Format(layoutYearMonth)), true
	}
	return "", false
}

// AxisLabel форматирует подпись точки графика по дате и масштабу.
// Неизвестный масштаб получает формат месяц/день.
func AxisLabel(point time.Time, g Granularity) string {
	layout, ok := axisLayouts[g]
	if !ok {
		layout = layoutDay
	}
	return point.Format(layout)
}
