package period

import "time"

// Dated реализуется любой записью дневника, у которой есть момент фиксации.
type Dated interface {
	RecordDate() time.Time
}

// FilterByRange возвращает записи, чья календарная дата попадает в окно r.
// Порядок исходного среза сохраняется, время суток не учитывается.
func FilterByRange[T Dated](records []T, r Range) []T {
	result := make([]T, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.RecordDate()) {
			result = append(result, rec)
		}
	}
	return result
}
