package model

import "github.com/google/uuid"

type Role string

const (
	RoleSuperAdmin Role = "superadmin" // доступ ко всем клубам
	RoleClubAdmin  Role = "club_admin" // администратор одного клуба
	RoleCoach      Role = "coach"      // тренер, только просмотр и отметка посещаемости
)

// Session контекст текущего запроса: кто и в каком клубе работает.
// Передаётся явно в каждый сервис, никакого глобального состояния.
type Session struct {
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	ClubID   uuid.UUID `json:"club_id"`
	ClubName string    `json:"club_name"`
}

// CanAccessClub проверяет доступ сессии к клубу
func (s *Session) CanAccessClub(clubID uuid.UUID) bool {
	if s.Role == RoleSuperAdmin {
		return true
	}
	return s.ClubID == clubID
}

// CanManage проверяет может ли сессия изменять данные клуба
func (s *Session) CanManage(clubID uuid.UUID) bool {
	if s.Role == RoleSuperAdmin {
		return true
	}
	return s.Role == RoleClubAdmin && s.ClubID == clubID
}
