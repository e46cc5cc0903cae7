package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusNotPaid PaymentStatus = "not_paid"
)

// PaymentRecord статус месячного взноса игрока.
// Игрок без записи за месяц считается неоплатившим
type PaymentRecord struct {
	ID        int64         `json:"id"`
	ClubID    uuid.UUID     `json:"club_id"`
	PlayerID  uuid.UUID     `json:"player_id"`
	Year      int           `json:"year"`
	Month     int           `json:"month"` // 1-12
	Status    PaymentStatus `json:"status"`
	UpdatedAt time.Time     `json:"updated_at"`
}
