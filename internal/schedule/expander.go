package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

// ErrMalformedRule сигнализирует о некорректных параметрах повторения события.
// Ошибка фатальна только для этого события - остальные события отчёта
// обрабатываются дальше
var ErrMalformedRule = errors.New("malformed recurrence rule")

// ExpandOptions управляет материализацией.
// CapAtNow обрезает генерацию будущих вхождений: для отчётов по посещаемости
// нет смысла генерировать события, которые ещё не произошли. Календарь
// передаёт false и показывает расписание вперёд
type ExpandOptions struct {
	CapAtNow bool
	Now      time.Time // момент "сейчас" для CapAtNow; нулевое значение - time.Now()
}

// Expand материализует событие в конкретные вхождения внутри окна.
// Чистая функция: не трогает входные данные, результат отсортирован
// по времени вхождения (при равенстве - по идентификатору).
// Для одного события и окна результат детерминирован и не содержит
// двух вхождений на одну календарную дату
func Expand(a *model.Activity, w Window, opts ExpandOptions) ([]model.ActivityInstance, error) {
	duration := ParseDurationText(a.DurationText)

	if !a.IsRepeating {
		if !w.ContainsDate(a.StartTime) {
			return nil, nil
		}
		return []model.ActivityInstance{makeInstance(a, a.StartTime, duration, false)}, nil
	}

	if err := validateRule(a); err != nil {
		return nil, err
	}

	windowStart := DateOf(w.Start)
	effectiveEnd := DateOf(w.End)
	if a.RepeatUntil != nil {
		if until := DateOf(*a.RepeatUntil); until.Before(effectiveEnd) {
			effectiveEnd = until
		}
	}
	if opts.CapAtNow {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		if today := DateOf(now); today.Before(effectiveEnd) {
			effectiveEnd = today
		}
	}

	origin := DateOf(a.StartTime)

	var dates []time.Time
	switch a.RepeatType {
	case model.RepeatTypeDaily:
		dates = stepDaily(origin, windowStart, effectiveEnd)
	case model.RepeatTypeWeekly:
		dates = stepWeekly(origin, a.RepeatDays, windowStart, effectiveEnd)
	case model.RepeatTypeMonthly:
		dates = stepMonthly(origin, a.StartTime.Day(), windowStart, effectiveEnd)
	}

	instances := make([]model.ActivityInstance, 0, len(dates)+1)
	seen := make(map[string]struct{}, len(dates)+1)

	// Исходное вхождение идёт без суффикса даты и не считается сгенерированным
	if !origin.Before(windowStart) && !origin.After(effectiveEnd) {
		instances = append(instances, makeInstance(a, a.StartTime, duration, false))
		seen[DateStamp(origin)] = struct{}{}
	}

	for _, d := range dates {
		stamp := DateStamp(d)
		if _, ok := seen[stamp]; ok {
			continue
		}
		seen[stamp] = struct{}{}
		occ := combine(d, a.StartTime)
		instances = append(instances, makeInstance(a, occ, duration, true))
	}

	sort.Slice(instances, func(i, j int) bool {
		if !instances[i].OccurrenceTime.Equal(instances[j].OccurrenceTime) {
			return instances[i].OccurrenceTime.Before(instances[j].OccurrenceTime)
		}
		return instances[i].InstanceID < instances[j].InstanceID
	})

	return instances, nil
}

// validateRule проверяет параметры повторения
func validateRule(a *model.Activity) error {
	switch a.RepeatType {
	case model.RepeatTypeDaily, model.RepeatTypeWeekly, model.RepeatTypeMonthly:
	default:
		return fmt.Errorf("%w: unknown repeat type %q", ErrMalformedRule, a.RepeatType)
	}

	if a.RepeatType == model.RepeatTypeWeekly {
		for _, wd := range a.RepeatDays {
			if wd < 0 || wd > 6 {
				return fmt.Errorf("%w: weekday %d out of range 0-6", ErrMalformedRule, wd)
			}
		}
	}

	return nil
}

// stepDaily возвращает даты ежедневных повторов после исходного дня
func stepDaily(origin, windowStart, effectiveEnd time.Time) []time.Time {
	cursor := origin.AddDate(0, 0, 1)
	if windowStart.After(cursor) {
		cursor = windowStart
	}

	var dates []time.Time
	for ; !cursor.After(effectiveEnd); cursor = cursor.AddDate(0, 0, 1) {
		dates = append(dates, cursor)
	}
	return dates
}

// stepWeekly возвращает даты еженедельных повторов.
// Пустой набор дней недели означает повтор в тот же день недели, что и
// исходное вхождение. Кандидаты по всем выбранным дням сливаются;
// дата исходного вхождения исключается
func stepWeekly(origin time.Time, repeatDays []int, windowStart, effectiveEnd time.Time) []time.Time {
	weekdays := repeatDays
	if len(weekdays) == 0 {
		weekdays = []int{int(origin.Weekday())}
	}

	var dates []time.Time
	for _, wd := range weekdays {
		// Первое вхождение этого дня недели начиная с исходной даты
		delta := (wd - int(origin.Weekday()) + 7) % 7
		for cursor := origin.AddDate(0, 0, delta); !cursor.After(effectiveEnd); cursor = cursor.AddDate(0, 0, 7) {
			if cursor.Equal(origin) || cursor.Before(windowStart) {
				continue
			}
			dates = append(dates, cursor)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// stepMonthly возвращает даты ежемесячных повторов: то же число месяца,
// с прижатием к последнему дню когда месяц короче
func stepMonthly(origin time.Time, dayOfMonth int, windowStart, effectiveEnd time.Time) []time.Time {
	firstOfMonth := time.Date(origin.Year(), origin.Month(), 1, 0, 0, 0, 0, origin.Location())

	var dates []time.Time
	for i := 1; ; i++ {
		monthStart := firstOfMonth.AddDate(0, i, 0)
		lastDay := monthStart.AddDate(0, 1, -1).Day()
		day := dayOfMonth
		if day > lastDay {
			day = lastDay
		}
		d := time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, monthStart.Location())
		if d.After(effectiveEnd) {
			return dates
		}
		if !d.Before(windowStart) {
			dates = append(dates, d)
		}
	}
}

// combine совмещает календарную дату вхождения с исходным временем суток
func combine(date, timeOfDay time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), timeOfDay.Second(), 0,
		timeOfDay.Location(),
	)
}

func makeInstance(a *model.Activity, occurrence time.Time, duration time.Duration, generated bool) model.ActivityInstance {
	instanceID := a.ID
	if generated {
		instanceID = a.ID + "-" + DateStamp(occurrence)
	}
	return model.ActivityInstance{
		InstanceID:       instanceID,
		SourceActivityID: a.ID,
		TeamID:           a.TeamID,
		Title:            a.Title,
		Type:             a.Type,
		Location:         a.Location,
		OccurrenceTime:   occurrence,
		EndTime:          occurrence.Add(duration),
		IsGenerated:      generated,
	}
}
