package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/repository"
	"github.com/ndorofeev/clubdesk_backend/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	reportService *service.ReportService
	clubRepo      *repository.ClubRepository
	logger        *zap.Logger
	stopChan      chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(reportService *service.ReportService, clubRepo *repository.ClubRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reportService: reportService,
		clubRepo:      clubRepo,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runAnalyticsRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runAnalyticsRefreshTask периодически прогревает аналитику по всем клубам.
// Заодно это ранний детектор битых правил повторения: пропуски попадают
// в лог и в метрики до того, как их увидит администратор
func (s *Scheduler) runAnalyticsRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.refreshAnalytics(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshAnalytics(ctx)
		case <-s.stopChan:
			s.logger.Info("Analytics refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Analytics refresh task cancelled")
			return
		}
	}
}

// refreshAnalytics пересчитывает сводку аналитики для каждого клуба
func (s *Scheduler) refreshAnalytics(ctx context.Context) {
	s.logger.Info("Starting analytics refresh")

	clubs, err := s.clubRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list clubs for analytics refresh", zap.Error(err))
		return
	}

	for _, club := range clubs {
		sess := &model.Session{
			UserID:   "system",
			Role:     model.RoleSuperAdmin,
			ClubID:   club.ID,
			ClubName: club.Name,
		}

		overview, err := s.reportService.AnalyticsOverviewReport(ctx, sess)
		if err != nil {
			s.logger.Error("Failed to refresh analytics for club",
				zap.Error(err),
				zap.String("club_id", club.ID.String()),
			)
			continue
		}

		s.logger.Info("Analytics refreshed",
			zap.String("club_id", club.ID.String()),
			zap.Int("teams", overview.TeamsCount),
			zap.Int("players", overview.PlayersCount),
			zap.Int("unmatched_attendance", overview.Attendance.UnmatchedCount),
			zap.Int("ambiguous_attendance", overview.Attendance.AmbiguousCount),
		)
	}

	service.RecordAnalyticsRefresh(time.Now())
	s.logger.Info("Analytics refresh completed")
}
