// Package render отрисовывает месячный календарь клуба в PNG.
package render

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 1000
	headerHeight    = 80
	weekdayRowH     = 36
	cellPadding     = 6.0
	eventRowHeight  = 18.0
	eventRadius     = 4.0
	maxEventsPerDay = 5
	totalColumns    = 7
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 220}
	gridLineColor   = color.NRGBA{150, 150, 150, 255}
	todayBgColor    = color.NRGBA{255, 99, 71, 60}
	otherMonthColor = color.NRGBA{230, 230, 230, 255}
	evenCellColor   = color.NRGBA{240, 240, 240, 255}
	oddCellColor    = color.NRGBA{220, 220, 220, 255}

	trainingColor   = color.RGBA{133, 193, 85, 220}
	gameColor       = color.RGBA{255, 182, 193, 255}
	tournamentColor = color.RGBA{140, 170, 230, 255}
	otherColor      = color.RGBA{200, 200, 200, 220}
	eventTextColor  = color.RGBA{20, 24, 28, 230}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

// MonthCalendarPNG рисует сетку месяца со всеми вхождениями событий.
// Недели начинаются с понедельника
func MonthCalendarPNG(clubName string, year int, month time.Month, instances []model.ActivityInstance) ([]byte, error) {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	byDate := groupByDate(instances)
	weeks := weekCount(firstDay)
	today := time.Now()

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	cellWidth := float64(imageWidth) / totalColumns
	cellHeight := float64(imageHeight-headerHeight-weekdayRowH) / float64(weeks)

	drawHeader(dc, clubName, month, year)
	drawWeekdayRow(dc, cellWidth)

	// первая ячейка сетки - понедельник недели, содержащей 1-е число
	gridStart := firstDay.AddDate(0, 0, -daysSinceMonday(firstDay))
	date := gridStart
	for week := 0; week < weeks; week++ {
		for col := 0; col < totalColumns; col++ {
			x := float64(col) * cellWidth
			y := float64(headerHeight+weekdayRowH) + float64(week)*cellHeight
			drawDayCell(dc, date, month, today, byDate, x, y, cellWidth, cellHeight, col)
			date = date.AddDate(0, 0, 1)
		}
	}

	drawLegend(dc)

	return encodeImage(dc)
}

func daysSinceMonday(t time.Time) int {
	d := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		d = 6
	}
	return d
}

// weekCount число строк сетки, нужных для месяца
func weekCount(firstDay time.Time) int {
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()
	return (daysSinceMonday(firstDay) + daysInMonth + 6) / 7
}

func groupByDate(instances []model.ActivityInstance) map[string][]model.ActivityInstance {
	byDate := make(map[string][]model.ActivityInstance)
	for _, inst := range instances {
		key := inst.OccurrenceTime.Format("2006-01-02")
		byDate[key] = append(byDate[key], inst)
	}
	return byDate
}

func drawHeader(dc *gg.Context, clubName string, month time.Month, year int) {
	title := getMonthNameRussian(month) + " " + strconv.Itoa(year)
	if clubName != "" {
		title = clubName + " - " + title
	}
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/2, 0.5, 0.5)
}

func drawWeekdayRow(dc *gg.Context, cellWidth float64) {
	dc.SetColor(textColor)
	for col := 0; col < totalColumns; col++ {
		label := getWeekdayShort(weekdayForColumn(col))
		x := float64(col)*cellWidth + cellWidth/2
		dc.DrawStringAnchored(label, x, float64(headerHeight)+float64(weekdayRowH)/2, 0.5, 0.5)
	}
}

// weekdayForColumn колонка 0 = понедельник
func weekdayForColumn(col int) time.Weekday {
	return time.Weekday((col + 1) % 7)
}

func drawDayCell(dc *gg.Context, date time.Time, month time.Month, today time.Time,
	byDate map[string][]model.ActivityInstance, x, y, cellWidth, cellHeight float64, col int) {

	switch {
	case date.Month() != month:
		dc.SetColor(otherMonthColor)
	case isSameDay(date, today):
		dc.SetColor(todayBgColor)
	case col%2 == 0:
		dc.SetColor(evenCellColor)
	default:
		dc.SetColor(oddCellColor)
	}
	dc.DrawRectangle(x, y, cellWidth, cellHeight)
	dc.Fill()

	dc.SetLineWidth(0.5)
	dc.SetColor(gridLineColor)
	dc.DrawRectangle(x, y, cellWidth, cellHeight)
	dc.Stroke()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(strconv.Itoa(date.Day()), x+cellPadding, y+cellPadding+6, 0, 0.5)

	if date.Month() != month {
		return
	}

	events := byDate[date.Format("2006-01-02")]
	eventY := y + cellPadding + 18
	for i, inst := range events {
		if i >= maxEventsPerDay {
			dc.SetColor(textColor)
			more := "+" + strconv.Itoa(len(events)-maxEventsPerDay)
			dc.DrawStringAnchored(more, x+cellPadding, eventY+eventRowHeight/2, 0, 0.5)
			break
		}
		drawEvent(dc, inst, x, eventY, cellWidth)
		eventY += eventRowHeight + 2
	}
}

func drawEvent(dc *gg.Context, inst model.ActivityInstance, x, y, cellWidth float64) {
	dc.SetColor(activityColor(inst.Type))
	dc.DrawRoundedRectangle(x+cellPadding, y, cellWidth-cellPadding*2, eventRowHeight, eventRadius)
	dc.Fill()

	label := inst.OccurrenceTime.Format("15:04") + " " + inst.Title
	maxLen := int((cellWidth - cellPadding*4) / 7)
	if maxLen > 3 && len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	dc.SetColor(eventTextColor)
	dc.DrawStringAnchored(label, x+cellPadding+4, y+eventRowHeight/2, 0, 0.5)
}

func activityColor(t model.ActivityType) color.RGBA {
	switch t {
	case model.ActivityTypeTraining:
		return trainingColor
	case model.ActivityTypeGame:
		return gameColor
	case model.ActivityTypeTournament:
		return tournamentColor
	default:
		return otherColor
	}
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func drawLegend(dc *gg.Context) {
	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Тренировка", trainingColor},
		{"Игра", gameColor},
		{"Турнир", tournamentColor},
		{"Другое", otherColor},
	}

	boxW := 20.0
	boxH := 14.0
	x := 20.0
	y := float64(headerHeight) - 24.0

	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.Label, x+boxW+6, y+boxH/2, 0, 0.5)
		w, _ := dc.MeasureString(item.Label)
		x += boxW + w + 30
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getWeekdayShort(weekday time.Weekday) string {
	weekdays := map[time.Weekday]string{
		time.Monday:    "Пн",
		time.Tuesday:   "Вт",
		time.Wednesday: "Ср",
		time.Thursday:  "Чт",
		time.Friday:    "Пт",
		time.Saturday:  "Сб",
		time.Sunday:    "Вс",
	}
	return weekdays[weekday]
}

func getMonthNameRussian(month time.Month) string {
	months := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return months[month]
}
