package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/repository"
)

// ClubService CRUD-операции над командами, игроками, событиями,
// отметками посещаемости и оплатами с проверкой прав сессии
type ClubService struct {
	clubRepo       *repository.ClubRepository
	teamRepo       *repository.TeamRepository
	playerRepo     *repository.PlayerRepository
	activityRepo   *repository.ActivityRepository
	attendanceRepo *repository.AttendanceRepository
	paymentRepo    *repository.PaymentRepository
	logger         *zap.Logger
}

func NewClubService(
	clubRepo *repository.ClubRepository,
	teamRepo *repository.TeamRepository,
	playerRepo *repository.PlayerRepository,
	activityRepo *repository.ActivityRepository,
	attendanceRepo *repository.AttendanceRepository,
	paymentRepo *repository.PaymentRepository,
	logger *zap.Logger,
) *ClubService {
	return &ClubService{
		clubRepo:       clubRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		activityRepo:   activityRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		logger:         logger,
	}
}

// CreateClub создаёт новый клуб. Только для superadmin
func (s *ClubService) CreateClub(ctx context.Context, sess *model.Session, club *model.Club) error {
	if sess.Role != model.RoleSuperAdmin {
		return fmt.Errorf("no permission to create clubs")
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return fmt.Errorf("create club: %w", err)
	}

	s.logger.Info("Club created",
		zap.String("club_id", club.ID.String()),
		zap.String("name", club.Name),
	)

	return nil
}

// GetClub возвращает карточку клуба сессии
func (s *ClubService) GetClub(ctx context.Context, sess *model.Session) (*model.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, sess.ClubID)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	if club == nil {
		return nil, fmt.Errorf("club %s not found", sess.ClubID)
	}
	return club, nil
}

// GetTeams возвращает команды клуба сессии
func (s *ClubService) GetTeams(ctx context.Context, sess *model.Session) ([]*model.Team, error) {
	return s.teamRepo.GetByClubID(ctx, sess.ClubID)
}

// CreateTeam создаёт команду в клубе сессии
func (s *ClubService) CreateTeam(ctx context.Context, sess *model.Session, team *model.Team) error {
	if !sess.CanManage(sess.ClubID) {
		return fmt.Errorf("no permission to manage club")
	}

	team.ClubID = sess.ClubID
	team.IsActive = true

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	s.logger.Info("Team created",
		zap.String("team_id", team.ID.String()),
		zap.String("club_id", sess.ClubID.String()),
		zap.String("name", team.Name),
	)

	return nil
}

// UpdateTeam обновляет команду
func (s *ClubService) UpdateTeam(ctx context.Context, sess *model.Session, team *model.Team) error {
	existing, err := s.teamRepo.GetByID(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}

	if existing == nil {
		return fmt.Errorf("team not found")
	}

	if !sess.CanManage(existing.ClubID) {
		return fmt.Errorf("team does not belong to club")
	}

	team.ClubID = existing.ClubID
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	s.logger.Info("Team updated", zap.String("team_id", team.ID.String()))
	return nil
}

// DeleteTeam удаляет команду
func (s *ClubService) DeleteTeam(ctx context.Context, sess *model.Session, teamID uuid.UUID) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}

	if team == nil {
		return fmt.Errorf("team not found")
	}

	if !sess.CanManage(team.ClubID) {
		return fmt.Errorf("team does not belong to club")
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.Info("Team deleted", zap.String("team_id", teamID.String()))
	return nil
}

// GetTeamActivities возвращает шаблоны событий команды (без материализации
// повторений - для экрана редактирования расписания)
func (s *ClubService) GetTeamActivities(ctx context.Context, sess *model.Session, teamID uuid.UUID) ([]*model.Activity, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}

	if team == nil {
		return nil, fmt.Errorf("team not found")
	}

	if !sess.CanAccessClub(team.ClubID) {
		return nil, fmt.Errorf("team does not belong to club")
	}

	return s.activityRepo.GetByTeamID(ctx, teamID)
}

// GetPlayers возвращает игроков клуба, опционально одной команды
func (s *ClubService) GetPlayers(ctx context.Context, sess *model.Session, teamID *uuid.UUID) ([]*model.Player, error) {
	return s.playerRepo.GetByClubID(ctx, sess.ClubID, teamID)
}

// CreatePlayer создаёт игрока в команде клуба сессии
func (s *ClubService) CreatePlayer(ctx context.Context, sess *model.Session, player *model.Player) error {
	if !sess.CanManage(sess.ClubID) {
		return fmt.Errorf("no permission to manage club")
	}

	team, err := s.teamRepo.GetByID(ctx, player.TeamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}

	if team == nil {
		return fmt.Errorf("team not found")
	}

	if team.ClubID != sess.ClubID {
		return fmt.Errorf("team does not belong to club")
	}

	player.ClubID = sess.ClubID
	player.IsActive = true

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return fmt.Errorf("create player: %w", err)
	}

	s.logger.Info("Player created",
		zap.String("player_id", player.ID.String()),
		zap.String("team_id", player.TeamID.String()),
	)

	return nil
}

// UpdatePlayer обновляет игрока
func (s *ClubService) UpdatePlayer(ctx context.Context, sess *model.Session, player *model.Player) error {
	existing, err := s.playerRepo.GetByID(ctx, player.ID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}

	if existing == nil {
		return fmt.Errorf("player not found")
	}

	if !sess.CanManage(existing.ClubID) {
		return fmt.Errorf("player does not belong to club")
	}

	player.ClubID = existing.ClubID
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	s.logger.Info("Player updated", zap.String("player_id", player.ID.String()))
	return nil
}

// DeactivatePlayer помечает игрока выбывшим
func (s *ClubService) DeactivatePlayer(ctx context.Context, sess *model.Session, playerID uuid.UUID) error {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}

	if player == nil {
		return fmt.Errorf("player not found")
	}

	if !sess.CanManage(player.ClubID) {
		return fmt.Errorf("player does not belong to club")
	}

	return s.playerRepo.Deactivate(ctx, playerID)
}

// CreateActivity создаёт событие в расписании команды
func (s *ClubService) CreateActivity(ctx context.Context, sess *model.Session, a *model.Activity) error {
	if !sess.CanManage(sess.ClubID) {
		return fmt.Errorf("no permission to manage club")
	}

	team, err := s.teamRepo.GetByID(ctx, a.TeamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}

	if team == nil {
		return fmt.Errorf("team not found")
	}

	if team.ClubID != sess.ClubID {
		return fmt.Errorf("team does not belong to club")
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.ClubID = sess.ClubID

	if err := s.activityRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	s.logger.Info("Activity created",
		zap.String("activity_id", a.ID),
		zap.String("team_id", a.TeamID.String()),
		zap.String("type", string(a.Type)),
		zap.Bool("is_repeating", a.IsRepeating),
	)

	return nil
}

// UpdateActivity обновляет событие
func (s *ClubService) UpdateActivity(ctx context.Context, sess *model.Session, a *model.Activity) error {
	existing, err := s.activityRepo.GetByID(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("get activity: %w", err)
	}

	if existing == nil {
		return fmt.Errorf("activity not found")
	}

	if !sess.CanManage(existing.ClubID) {
		return fmt.Errorf("activity does not belong to club")
	}

	a.ClubID = existing.ClubID
	a.TeamID = existing.TeamID

	if err := s.activityRepo.Update(ctx, a); err != nil {
		return fmt.Errorf("update activity: %w", err)
	}

	s.logger.Info("Activity updated", zap.String("activity_id", a.ID))
	return nil
}

// DeleteActivity удаляет событие
func (s *ClubService) DeleteActivity(ctx context.Context, sess *model.Session, activityID string) error {
	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("get activity: %w", err)
	}

	if a == nil {
		return fmt.Errorf("activity not found")
	}

	if !sess.CanManage(a.ClubID) {
		return fmt.Errorf("activity does not belong to club")
	}

	if err := s.activityRepo.Delete(ctx, activityID); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}

	s.logger.Info("Activity deleted", zap.String("activity_id", activityID))
	return nil
}

// MarkAttendance отмечает игрока на вхождении события.
// Тренерам разрешено: отметка посещаемости не считается управлением клубом
func (s *ClubService) MarkAttendance(ctx context.Context, sess *model.Session, rec *model.AttendanceRecord) error {
	player, err := s.playerRepo.GetByID(ctx, rec.PlayerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}

	if player == nil {
		return fmt.Errorf("player not found")
	}

	if !sess.CanAccessClub(player.ClubID) {
		return fmt.Errorf("player does not belong to club")
	}

	rec.ClubID = player.ClubID
	rec.MarkedBy = sess.UserID
	if rec.ActualDate.IsZero() {
		rec.ActualDate = time.Now()
	}

	if err := s.attendanceRepo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}

	s.logger.Info("Attendance marked",
		zap.String("activity_id", rec.ActivityID),
		zap.String("player_id", rec.PlayerID.String()),
		zap.String("status", string(rec.Status)),
	)

	return nil
}

// GetAttendance возвращает отметки по идентификатору вхождения
// (составному или голому), отфильтрованные по доступу сессии
func (s *ClubService) GetAttendance(ctx context.Context, sess *model.Session, activityID string) ([]model.AttendanceRecord, error) {
	records, err := s.attendanceRepo.GetByActivityID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	var visible []model.AttendanceRecord
	for _, rec := range records {
		if sess.CanAccessClub(rec.ClubID) {
			visible = append(visible, rec)
		}
	}

	return visible, nil
}

// DeleteAttendance удаляет ошибочную отметку из клуба сессии
func (s *ClubService) DeleteAttendance(ctx context.Context, sess *model.Session, id int64) error {
	if !sess.CanManage(sess.ClubID) {
		return fmt.Errorf("no permission to manage club")
	}

	if err := s.attendanceRepo.Delete(ctx, id, sess.ClubID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	s.logger.Info("Attendance record deleted", zap.Int64("record_id", id))
	return nil
}

// GetPlayerPayments возвращает историю оплат игрока
func (s *ClubService) GetPlayerPayments(ctx context.Context, sess *model.Session, playerID uuid.UUID) ([]*model.PaymentRecord, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	if player == nil {
		return nil, fmt.Errorf("player not found")
	}

	if !sess.CanAccessClub(player.ClubID) {
		return nil, fmt.Errorf("player does not belong to club")
	}

	return s.paymentRepo.GetByPlayerID(ctx, playerID)
}

// SetPaymentStatus выставляет статус оплаты игрока за месяц
func (s *ClubService) SetPaymentStatus(ctx context.Context, sess *model.Session, rec *model.PaymentRecord) error {
	if !sess.CanManage(sess.ClubID) {
		return fmt.Errorf("no permission to manage club")
	}

	player, err := s.playerRepo.GetByID(ctx, rec.PlayerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}

	if player == nil {
		return fmt.Errorf("player not found")
	}

	if player.ClubID != sess.ClubID {
		return fmt.Errorf("player does not belong to club")
	}

	rec.ClubID = player.ClubID

	if err := s.paymentRepo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("set payment status: %w", err)
	}

	s.logger.Info("Payment status set",
		zap.String("player_id", rec.PlayerID.String()),
		zap.Int("year", rec.Year),
		zap.Int("month", rec.Month),
		zap.String("status", string(rec.Status)),
	)

	return nil
}
