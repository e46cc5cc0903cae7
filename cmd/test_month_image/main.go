package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ndorofeev/clubdesk_backend/internal/controller/render"
	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

func main() {
	// Создаем тестовые данные: расписание на текущий месяц
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	teamID := uuid.New()

	instances := []model.ActivityInstance{
		// Тренировки по понедельникам и средам
		{
			InstanceID:       "T1-" + monthStart.AddDate(0, 0, 1).Format("20060102"),
			SourceActivityID: "T1",
			TeamID:           teamID,
			Title:            "Тренировка U-12",
			Type:             model.ActivityTypeTraining,
			OccurrenceTime:   monthStart.AddDate(0, 0, 1).Add(18 * time.Hour),
			EndTime:          monthStart.AddDate(0, 0, 1).Add(19 * time.Hour),
			IsGenerated:      true,
		},
		{
			InstanceID:       "T1-" + monthStart.AddDate(0, 0, 3).Format("20060102"),
			SourceActivityID: "T1",
			TeamID:           teamID,
			Title:            "Тренировка U-12",
			Type:             model.ActivityTypeTraining,
			OccurrenceTime:   monthStart.AddDate(0, 0, 3).Add(18 * time.Hour),
			EndTime:          monthStart.AddDate(0, 0, 3).Add(19 * time.Hour),
			IsGenerated:      true,
		},
		// Игра в субботу
		{
			InstanceID:       "G1",
			SourceActivityID: "G1",
			TeamID:           teamID,
			Title:            "Игра с Динамо",
			Type:             model.ActivityTypeGame,
			OccurrenceTime:   monthStart.AddDate(0, 0, 12).Add(12 * time.Hour),
			EndTime:          monthStart.AddDate(0, 0, 12).Add(13*time.Hour + 30*time.Minute),
		},
		// Турнир в конце месяца
		{
			InstanceID:       "TR1",
			SourceActivityID: "TR1",
			TeamID:           teamID,
			Title:            "Областной турнир",
			Type:             model.ActivityTypeTournament,
			OccurrenceTime:   monthStart.AddDate(0, 0, 25).Add(10 * time.Hour),
			EndTime:          monthStart.AddDate(0, 0, 25).Add(16 * time.Hour),
		},
	}

	// Генерируем изображение
	imageData, err := render.MonthCalendarPNG("СК Метеор", now.Year(), now.Month(), instances)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	// Сохраняем в файл
	filename := "month.png"
	err = os.WriteFile(filename, imageData, 0644)
	if err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Месяц: %s\n", monthStart.Format("01.2006"))
	fmt.Printf("📊 Вхождений: %d\n", len(instances))
}
