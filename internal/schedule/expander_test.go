package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ts(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func window(t *testing.T, start, end time.Time) Window {
	t.Helper()
	w, err := NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestExpandSingleActivityInWindow(t *testing.T) {
	a := &model.Activity{
		ID:        "A1",
		Title:     "Товарищеская игра",
		Type:      model.ActivityTypeGame,
		StartTime: ts(2024, time.January, 10, 18, 0),
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	require.Equal(t, "A1", instances[0].InstanceID)
	require.Equal(t, "A1", instances[0].SourceActivityID)
	require.False(t, instances[0].IsGenerated)
	require.Equal(t, ts(2024, time.January, 10, 18, 0), instances[0].OccurrenceTime)
}

func TestExpandSingleActivityOutsideWindow(t *testing.T) {
	a := &model.Activity{
		ID:        "A1",
		StartTime: ts(2024, time.February, 10, 18, 0),
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Empty(t, instances)
}

func TestExpandWeeklyMondays(t *testing.T) {
	// 2024-01-01 понедельник
	until := ts(2024, time.January, 29, 0, 0)
	a := &model.Activity{
		ID:          "A1",
		Title:       "Тренировка",
		Type:        model.ActivityTypeTraining,
		StartTime:   ts(2024, time.January, 1, 18, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeWeekly,
		RepeatDays:  []int{1},
		RepeatUntil: &until,
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 5)

	wantDates := []time.Time{
		ts(2024, time.January, 1, 18, 0),
		ts(2024, time.January, 8, 18, 0),
		ts(2024, time.January, 15, 18, 0),
		ts(2024, time.January, 22, 18, 0),
		ts(2024, time.January, 29, 18, 0),
	}
	for i, want := range wantDates {
		require.Equal(t, want, instances[i].OccurrenceTime)
		require.Equal(t, time.Monday, instances[i].OccurrenceTime.Weekday())
	}

	// Исходное вхождение без суффикса, остальные - составные идентификаторы
	require.Equal(t, "A1", instances[0].InstanceID)
	require.False(t, instances[0].IsGenerated)
	require.Equal(t, "A1-20240108", instances[1].InstanceID)
	require.True(t, instances[1].IsGenerated)
	require.Equal(t, "A1-20240129", instances[4].InstanceID)
}

func TestExpandWeeklyMonWedFriFourWeeks(t *testing.T) {
	// Окно в 4 недели: 2024-01-01 (пн) - 2024-01-28 (вс)
	a := &model.Activity{
		ID:          "A2",
		StartTime:   ts(2024, time.January, 1, 17, 30),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeWeekly,
		RepeatDays:  []int{1, 3, 5},
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 28))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 12) // 3 раза в неделю x 4 недели

	allowed := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
	for _, inst := range instances {
		require.True(t, allowed[inst.OccurrenceTime.Weekday()],
			"unexpected weekday %s", inst.OccurrenceTime.Weekday())
	}
}

func TestExpandDailyCounts(t *testing.T) {
	a := &model.Activity{
		ID:          "A3",
		StartTime:   ts(2024, time.March, 5, 9, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeDaily,
	}

	w := window(t, date(2024, time.March, 1), date(2024, time.March, 10))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	// 5..10 марта включительно
	require.Len(t, instances, 6)
	require.False(t, instances[0].IsGenerated)
	for _, inst := range instances[1:] {
		require.True(t, inst.IsGenerated)
	}
}

func TestExpandDailyWindowAfterStart(t *testing.T) {
	a := &model.Activity{
		ID:          "A3",
		StartTime:   ts(2024, time.January, 1, 9, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeDaily,
	}

	w := window(t, date(2024, time.March, 5), date(2024, time.March, 10))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	// Исходное вхождение до окна: только сгенерированные, по одному на день
	require.Len(t, instances, 6)
	for _, inst := range instances {
		require.True(t, inst.IsGenerated)
	}
}

func TestExpandMonthlyClampsShortMonth(t *testing.T) {
	// Старт 31 января: февраль короче, дата прижимается к последнему дню
	a := &model.Activity{
		ID:          "A4",
		StartTime:   ts(2024, time.January, 31, 12, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeMonthly,
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.April, 30))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 4)
	require.Equal(t, ts(2024, time.January, 31, 12, 0), instances[0].OccurrenceTime)
	require.Equal(t, ts(2024, time.February, 29, 12, 0), instances[1].OccurrenceTime) // високосный год
	require.Equal(t, ts(2024, time.March, 31, 12, 0), instances[2].OccurrenceTime)
	require.Equal(t, ts(2024, time.April, 30, 12, 0), instances[3].OccurrenceTime)
}

func TestExpandMonthlyClampNonLeapFebruary(t *testing.T) {
	a := &model.Activity{
		ID:          "A4",
		StartTime:   ts(2023, time.January, 31, 12, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeMonthly,
	}

	w := window(t, date(2023, time.February, 1), date(2023, time.February, 28))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	require.Equal(t, ts(2023, time.February, 28, 12, 0), instances[0].OccurrenceTime)
}

func TestExpandRepeatUntilBoundsGeneration(t *testing.T) {
	until := ts(2024, time.January, 10, 0, 0)
	a := &model.Activity{
		ID:          "A5",
		StartTime:   ts(2024, time.January, 1, 9, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeDaily,
		RepeatUntil: &until,
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	// 1..10 января включительно, граница repeat_until входит
	require.Len(t, instances, 10)
	last := instances[len(instances)-1]
	require.Equal(t, ts(2024, time.January, 10, 9, 0), last.OccurrenceTime)
}

func TestExpandCapAtNow(t *testing.T) {
	a := &model.Activity{
		ID:          "A6",
		StartTime:   ts(2024, time.January, 1, 9, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeDaily,
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	// Без капа - всё окно
	full, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, full, 31)

	// С капом - только до "сейчас"
	capped, err := Expand(a, w, ExpandOptions{CapAtNow: true, Now: ts(2024, time.January, 15, 13, 45)})
	require.NoError(t, err)
	require.Len(t, capped, 15)
	require.Equal(t, ts(2024, time.January, 15, 9, 0), capped[len(capped)-1].OccurrenceTime)
}

func TestExpandUnknownRepeatType(t *testing.T) {
	a := &model.Activity{
		ID:          "A7",
		StartTime:   ts(2024, time.January, 1, 9, 0),
		IsRepeating: true,
		RepeatType:  "fortnightly",
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	_, err := Expand(a, w, ExpandOptions{})
	require.ErrorIs(t, err, ErrMalformedRule)
}

func TestExpandWeekdayOutOfRange(t *testing.T) {
	a := &model.Activity{
		ID:          "A8",
		StartTime:   ts(2024, time.January, 1, 9, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeWeekly,
		RepeatDays:  []int{1, 7},
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	_, err := Expand(a, w, ExpandOptions{})
	require.ErrorIs(t, err, ErrMalformedRule)
}

func TestExpandDeterministicNoDuplicateDates(t *testing.T) {
	a := &model.Activity{
		ID:          "A9",
		StartTime:   ts(2024, time.January, 1, 9, 0),
		IsRepeating: true,
		RepeatType:  model.RepeatTypeWeekly,
		RepeatDays:  []int{1, 1, 3}, // дубликат дня недели на входе
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 14))

	first, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	second, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Equal(t, first, second)

	seen := map[string]bool{}
	for _, inst := range first {
		stamp := DateStamp(inst.OccurrenceTime)
		require.False(t, seen[stamp], "duplicate date %s", stamp)
		seen[stamp] = true
	}
}

func TestExpandWeeklyEmptyRepeatDays(t *testing.T) {
	// Пустой набор дней - повтор в тот же день недели
	a := &model.Activity{
		ID:          "A10",
		StartTime:   ts(2024, time.January, 3, 19, 0), // среда
		IsRepeating: true,
		RepeatType:  model.RepeatTypeWeekly,
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 5) // 3, 10, 17, 24, 31 января
	for _, inst := range instances {
		require.Equal(t, time.Wednesday, inst.OccurrenceTime.Weekday())
	}
}

func TestExpandEndTimeFromDurationText(t *testing.T) {
	a := &model.Activity{
		ID:           "A11",
		StartTime:    ts(2024, time.January, 10, 18, 0),
		DurationText: "1h30m",
	}

	w := window(t, date(2024, time.January, 1), date(2024, time.January, 31))

	instances, err := Expand(a, w, ExpandOptions{})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	require.Equal(t, ts(2024, time.January, 10, 19, 30), instances[0].EndTime)
}
