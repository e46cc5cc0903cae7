package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityTypeTraining   ActivityType = "training"
	ActivityTypeGame       ActivityType = "game"
	ActivityTypeTournament ActivityType = "tournament"
	ActivityTypeOther      ActivityType = "other"
)

type RepeatType string

const (
	RepeatTypeDaily   RepeatType = "daily"
	RepeatTypeWeekly  RepeatType = "weekly"
	RepeatTypeMonthly RepeatType = "monthly"
)

// Activity представляет событие клуба (тренировка, игра, турнир),
// возможно повторяющееся по расписанию
type Activity struct {
	ID           string       `json:"id"` // стабильный строковый идентификатор
	ClubID       uuid.UUID    `json:"club_id"`
	TeamID       uuid.UUID    `json:"team_id"`
	Title        string       `json:"title"`
	Type         ActivityType `json:"type"`
	Location     string       `json:"location"`
	StartTime    time.Time    `json:"start_time"`    // первое вхождение
	DurationText string       `json:"duration_text"` // свободный формат: "1h", "1h30m", "90m"
	IsRepeating  bool         `json:"is_repeating"`
	RepeatType   RepeatType   `json:"repeat_type,omitempty"` // только если IsRepeating
	RepeatDays   []int        `json:"repeat_days,omitempty"` // 0 = Sunday, 6 = Saturday; только для weekly
	RepeatUntil  *time.Time   `json:"repeat_until,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ActivityInstance одно конкретное вхождение (возможно повторяющегося) события.
// Не хранится в базе - материализуется заново при каждом запросе.
type ActivityInstance struct {
	InstanceID       string       `json:"instance_id"` // "<activity_id>-<YYYYMMDD>" для сгенерированных, иначе activity_id
	SourceActivityID string       `json:"source_activity_id"`
	TeamID           uuid.UUID    `json:"team_id"`
	Title            string       `json:"title"`
	Type             ActivityType `json:"type"`
	Location         string       `json:"location"`
	OccurrenceTime   time.Time    `json:"occurrence_time"`
	EndTime          time.Time    `json:"end_time"`
	IsGenerated      bool         `json:"is_generated"` // false для исходного вхождения
}
