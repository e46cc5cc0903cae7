package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/report"
	"github.com/ndorofeev/clubdesk_backend/internal/schedule"
)

// AttendanceSource источник отметок посещаемости
type AttendanceSource interface {
	GetByClubForRange(ctx context.Context, clubID uuid.UUID, from, to time.Time) ([]model.AttendanceRecord, error)
}

// PaymentSource источник записей об оплате
type PaymentSource interface {
	GetByMonth(ctx context.Context, clubID uuid.UUID, year, month int) ([]*model.PaymentRecord, error)
}

// RosterSource источник составов (команды и игроки)
type RosterSource interface {
	GetByClubID(ctx context.Context, clubID uuid.UUID, teamID *uuid.UUID) ([]*model.Player, error)
}

// TeamSource источник команд клуба
type TeamSource interface {
	GetByClubID(ctx context.Context, clubID uuid.UUID) ([]*model.Team, error)
}

// AttendanceReport статистика посещаемости с количеством проблемных записей.
// Непривязанные и неоднозначные записи не прячутся - дашборд показывает
// частичный результат плюс счётчики
type AttendanceReport struct {
	Summary           report.AttendanceSummary `json:"summary"`
	UnmatchedCount    int                      `json:"unmatched_count"`
	AmbiguousCount    int                      `json:"ambiguous_count"`
	SkippedActivities []string                 `json:"skipped_activities"`
}

// AnalyticsOverview сводка для главного экрана аналитики
type AnalyticsOverview struct {
	TeamsCount   int                      `json:"teams_count"`
	PlayersCount int                      `json:"players_count"`
	Attendance   AttendanceReport         `json:"attendance"`
	Payments     report.ComplianceSummary `json:"payments"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

type ReportService struct {
	activities ActivitySource
	attendance AttendanceSource
	payments   PaymentSource
	players    RosterSource
	teams      TeamSource
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(
	activities ActivitySource,
	attendance AttendanceSource,
	payments PaymentSource,
	players RosterSource,
	teams TeamSource,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		activities: activities,
		attendance: attendance,
		payments:   payments,
		players:    players,
		teams:      teams,
		logger:     logger,
		now:        time.Now,
	}
}

// AttendanceStats считает статистику посещаемости клуба за интервал дат.
// Материализация капится на "сейчас": отчёт не должен учитывать
// ещё не прошедшие события
func (s *ReportService) AttendanceStats(ctx context.Context, sess *model.Session, teamID *uuid.UUID, from, to time.Time) (*AttendanceReport, error) {
	w, err := schedule.NewWindow(from, to)
	if err != nil {
		return nil, fmt.Errorf("report window: %w", err)
	}

	activities, err := s.activities.GetForRange(ctx, sess.ClubID, teamID, w.Start, w.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}

	opts := schedule.ExpandOptions{CapAtNow: true, Now: s.now()}

	var instances []model.ActivityInstance
	var skipped []string
	for _, a := range activities {
		expanded, err := schedule.Expand(a, w, opts)
		if err != nil {
			if errors.Is(err, schedule.ErrMalformedRule) {
				s.logger.Warn("Skipping activity with malformed recurrence rule",
					zap.String("activity_id", a.ID),
					zap.Error(err),
				)
				skippedActivities.Inc()
				skipped = append(skipped, a.ID)
				continue
			}
			return nil, fmt.Errorf("expand activity %s: %w", a.ID, err)
		}
		instances = append(instances, expanded...)
	}

	// Верхняя граница выборки эксклюзивна: w.End это полночь последнего
	// дня окна, а отметки несут время суток
	records, err := s.attendance.GetByClubForRange(ctx, sess.ClubID, w.Start, w.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get attendance records: %w", err)
	}

	// Фильтры по команде применены до сверки (через выборку событий),
	// поэтому записи чужих команд просто не найдут своё вхождение
	result := report.Reconcile(instances, records)
	report.ObserveReconcile(result)

	if len(result.Ambiguous) > 0 {
		s.logger.Warn("Ambiguous attendance matches detected",
			zap.Int("count", len(result.Ambiguous)),
		)
	}

	return &AttendanceReport{
		Summary:           report.SummarizeAttendance(result.Pairs),
		UnmatchedCount:    len(result.Unmatched),
		AmbiguousCount:    len(result.Ambiguous),
		SkippedActivities: skipped,
	}, nil
}

// PaymentComplianceReport считает долю оплативших взнос за месяц.
// Игроки без записи об оплате считаются неоплатившими
func (s *ReportService) PaymentComplianceReport(ctx context.Context, sess *model.Session, year int, month time.Month) (*report.ComplianceSummary, error) {
	players, err := s.players.GetByClubID(ctx, sess.ClubID, nil)
	if err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}

	payments, err := s.payments.GetByMonth(ctx, sess.ClubID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}

	summary := report.PaymentCompliance(players, payments, year, month)
	return &summary, nil
}

// AnalyticsOverviewReport собирает сводку: составы, посещаемость за
// последние 30 дней, оплата за текущий месяц
func (s *ReportService) AnalyticsOverviewReport(ctx context.Context, sess *model.Session) (*AnalyticsOverview, error) {
	now := s.now()

	teams, err := s.teams.GetByClubID(ctx, sess.ClubID)
	if err != nil {
		return nil, fmt.Errorf("get teams: %w", err)
	}

	players, err := s.players.GetByClubID(ctx, sess.ClubID, nil)
	if err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}

	activePlayers := 0
	for _, p := range players {
		if p.IsActive {
			activePlayers++
		}
	}

	attendance, err := s.AttendanceStats(ctx, sess, nil, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, fmt.Errorf("attendance stats: %w", err)
	}

	compliance, err := s.PaymentComplianceReport(ctx, sess, now.Year(), now.Month())
	if err != nil {
		return nil, fmt.Errorf("payment compliance: %w", err)
	}

	return &AnalyticsOverview{
		TeamsCount:   len(teams),
		PlayersCount: activePlayers,
		Attendance:   *attendance,
		Payments:     *compliance,
		GeneratedAt:  now,
	}, nil
}
