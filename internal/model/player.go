package model

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID          uuid.UUID  `json:"id"`
	ClubID      uuid.UUID  `json:"club_id"`
	TeamID      uuid.UUID  `json:"team_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	BirthDate   *time.Time `json:"birth_date"` // указатель - может быть nil
	ParentName  string     `json:"parent_name"`
	ParentPhone string     `json:"parent_phone"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FullName возвращает имя и фамилию игрока
func (p *Player) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
