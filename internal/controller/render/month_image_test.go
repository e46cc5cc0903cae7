package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

func TestMonthCalendarPNGProducesPNG(t *testing.T) {
	teamID := uuid.New()
	instances := []model.ActivityInstance{
		{
			InstanceID:       "A1-20240108",
			SourceActivityID: "A1",
			TeamID:           teamID,
			Title:            "Тренировка U-12",
			Type:             model.ActivityTypeTraining,
			OccurrenceTime:   time.Date(2024, time.January, 8, 18, 0, 0, 0, time.Local),
			EndTime:          time.Date(2024, time.January, 8, 19, 0, 0, 0, time.Local),
			IsGenerated:      true,
		},
		{
			InstanceID:       "A2",
			SourceActivityID: "A2",
			TeamID:           teamID,
			Title:            "Игра с соседями",
			Type:             model.ActivityTypeGame,
			OccurrenceTime:   time.Date(2024, time.January, 13, 12, 0, 0, 0, time.Local),
			EndTime:          time.Date(2024, time.January, 13, 13, 30, 0, 0, time.Local),
		},
	}

	png, err := MonthCalendarPNG("Метеор", 2024, time.January, instances)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// сигнатура PNG
	require.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

func TestMonthCalendarPNGEmptyMonth(t *testing.T) {
	png, err := MonthCalendarPNG("", 2024, time.February, nil)
	require.NoError(t, err)
	require.NotEmpty(t, png)
}

func TestWeekCount(t *testing.T) {
	// январь 2024 начинается в понедельник: ровно 5 строк
	require.Equal(t, 5, weekCount(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	// июнь 2025 начинается в воскресенье: 6 строк
	require.Equal(t, 6, weekCount(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	// февраль 2021 начинается в понедельник и имеет 28 дней: 4 строки
	require.Equal(t, 4, weekCount(time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC)))
}
