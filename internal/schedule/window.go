package schedule

import (
	"fmt"
	"time"
)

// Window интервал дат, ограничивающий материализацию расписания.
// Сравнение идёт по календарным датам: день Start и день End входят в интервал,
// время внутри суток не учитывается.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow создаёт окно, проверяя порядок границ
func NewWindow(start, end time.Time) (Window, error) {
	if end.Before(start) {
		return Window{}, fmt.Errorf("window end %s before start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return Window{Start: start, End: end}, nil
}

// MonthWindow возвращает окно, покрывающее один календарный месяц
func MonthWindow(year int, month time.Month, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return Window{Start: start, End: end}
}

// ContainsDate проверяет попадает ли дата (по календарному дню) в окно
func (w Window) ContainsDate(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(w.Start)) && !d.After(DateOf(w.End))
}

// DateOf обрезает время до начала календарного дня
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateStamp возвращает дату в формате YYYYMMDD для составных идентификаторов
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}
