// Package period вычисляет календарные окна для графиков здоровья:
// по масштабу и смещению назад определяет диапазон дат, фильтрует
// записи по дате и формирует подписи для осей и заголовков.
//
// Все функции чистые: опорный момент времени передается явно,
// системные часы внутри пакета не читаются.
package period

import (
	"fmt"
	"time"
)

// Granularity задает масштаб окна графика. Набор закрыт:
// новые значения требуют явной поддержки в CalcRange и таблице подписей.
type Granularity string

const (
	Week      Granularity = "week"    // 7 дней, от воскресенья
	Month     Granularity = "month"   // скользящие 5 недель, не календарный месяц
	SixMonths Granularity = "6months" // 6 календарных месяцев
	Year      Granularity = "year"    // 12 календарных месяцев
)

// ParseGranularity сопоставляет строку запроса с масштабом окна.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Week, Month, SixMonths, Year:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity: %q", s)
}

// Range задает окно календарных дат, обе границы включительно.
// Start и End всегда усечены до полуночи, Start <= End.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains сообщает, попадает ли момент t в окно.
// Сравнение только по календарной дате, время суток отбрасывается.
func (r Range) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days возвращает длину окна в днях, включая обе границы.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// DateOnly усекает момент времени до календарной даты.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart возвращает воскресенье недели, в которую попадает d.
func weekStart(d time.Time) time.Time {
	d = DateOnly(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// monthStart возвращает первый день месяца, в который попадает d.
func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// CalcRange вычисляет окно дат для масштаба g со смещением offset
// периодов назад от опорного момента now.
//
// Для Week и Month смещение чисто мультипликативное. Для SixMonths
// и Year окно заканчивается последним днем месяца перед опорным:
// offset 0 показывает месяцы, завершающиеся сейчас, offset > 0 —
// окно, непосредственно предшествующее сдвинутому опорному месяцу.
// Смещения не проверяются и не ограничиваются, это задача вызывающего.
func CalcRange(g Granularity, offset int, now time.Time) Range {
	switch g {
	case Week:
		start := weekStart(now.AddDate(0, 0, -offset*7))
		return Range{Start: start, End: start.AddDate(0, 0, 6)}
	case Month:
		start := weekStart(weekStart(now).AddDate(0, 0, -offset*28))
		return Range{Start: start, End: start.AddDate(0, 0, 34)}
	case SixMonths:
		return monthsRange(now, offset, 6)
	case Year:
		return monthsRange(now, offset, 12)
	}
	// Неизвестный масштаб схлопывается в однодневное окно,
	// чтобы сохранить инвариант Start <= End.
	d := DateOnly(now)
	return Range{Start: d, End: d}
}

// monthsRange строит окно из months календарных месяцев, завершающееся
// последним днем месяца перед опорным. Арифметика идет от первого дня
// месяца: AddDate от 29-31 числа перескакивал бы через короткие месяцы.
func monthsRange(now time.Time, offset, months int) Range {
	anchor := monthStart(now)
	if offset > 0 {
		anchor = anchor.AddDate(0, -offset*months, 0)
	}
	return Range{
		Start: anchor.AddDate(0, -months, 0),
		End:   anchor.AddDate(0, 0, -1),
	}
}
