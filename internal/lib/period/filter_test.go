package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	id         int
	recordedAt time.Time
}

func (r fakeRecord) RecordDate() time.Time { return r.recordedAt }

func TestFilterByRange_DailyRecords(t *testing.T) {
	// по одной записи в день на протяжении 400 дней, время суток разное
	start := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	records := make([]fakeRecord, 0, 400)
	for i := range 400 {
		records = append(records, fakeRecord{
			id:         i,
			recordedAt: start.AddDate(0, 0, i).Add(time.Duration(i%24) * time.Hour),
		})
	}

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	week := CalcRange(Week, 0, now)
	gotWeek := FilterByRange(records, week)
	assert.Len(t, gotWeek, 7)

	year := CalcRange(Year, 0, now)
	gotYear := FilterByRange(records, year)
	// окно 2023-06-01..2024-05-31, записи начинаются с 2023-09-01
	wantDays := int(year.End.Sub(date(2023, 9, 1)).Hours()/24) + 1
	assert.Len(t, gotYear, wantDays)
}

func TestFilterByRange_Boundaries(t *testing.T) {
	r := Range{Start: date(2024, 6, 9), End: date(2024, 6, 15)}

	records := []fakeRecord{
		{id: 1, recordedAt: time.Date(2024, 6, 8, 23, 59, 0, 0, time.UTC)},  // день до начала
		{id: 2, recordedAt: time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)},  // точно начало
		{id: 3, recordedAt: time.Date(2024, 6, 15, 0, 0, 1, 0, time.UTC)},   // точно конец
		{id: 4, recordedAt: time.Date(2024, 6, 16, 0, 0, 1, 0, time.UTC)},   // день после конца
	}

	got := FilterByRange(records, r)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].id)
	assert.Equal(t, 3, got[1].id)
}

func TestFilterByRange_PreservesOrder(t *testing.T) {
	r := Range{Start: date(2024, 6, 1), End: date(2024, 6, 30)}

	// записи намеренно не отсортированы по дате
	records := []fakeRecord{
		{id: 10, recordedAt: date(2024, 6, 20)},
		{id: 11, recordedAt: date(2024, 5, 1)},
		{id: 12, recordedAt: date(2024, 6, 5)},
		{id: 13, recordedAt: date(2024, 6, 25)},
	}

	got := FilterByRange(records, r)
	require.Len(t, got, 3)
	assert.Equal(t, []int{10, 12, 13}, []int{got[0].id, got[1].id, got[2].id})
}

func TestFilterByRange_Empty(t *testing.T) {
	r := Range{Start: date(2024, 6, 1), End: date(2024, 6, 30)}

	got := FilterByRange([]fakeRecord{}, r)
	assert.Empty(t, got)

	got = FilterByRange([]fakeRecord{{id: 1, recordedAt: date(2020, 1, 1)}}, r)
	assert.Empty(t, got)
}
