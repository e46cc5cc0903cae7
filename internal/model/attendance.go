package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord отметка посещаемости игрока.
// ActivityID может ссылаться как на instance_id ("A1-20240108"),
// так и на голый id события (legacy записи)
type AttendanceRecord struct {
	ID         int64            `json:"id"`
	ClubID     uuid.UUID        `json:"club_id"`
	ActivityID string           `json:"activity_id"`
	PlayerID   uuid.UUID        `json:"player_id"`
	Status     AttendanceStatus `json:"status"`
	ActualDate time.Time        `json:"actual_date"`
	MarkedBy   string           `json:"marked_by"`
	CreatedAt  time.Time        `json:"created_at"`
}
