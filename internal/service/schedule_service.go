package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/schedule"
)

// ActivitySource источник событий клуба (реализуется репозиторием)
type ActivitySource interface {
	GetForRange(ctx context.Context, clubID uuid.UUID, teamID *uuid.UUID, from, to time.Time) ([]*model.Activity, error)
	GetByID(ctx context.Context, id string) (*model.Activity, error)
}

// CalendarResult материализованное расписание плюс события, пропущенные
// из-за некорректных правил повторения. Один битый шаблон не должен
// ронять весь календарь
type CalendarResult struct {
	Instances         []model.ActivityInstance `json:"instances"`
	SkippedActivities []string                 `json:"skipped_activities"`
}

type ScheduleService struct {
	activities ActivitySource
	logger     *zap.Logger
}

func NewScheduleService(activities ActivitySource, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		activities: activities,
		logger:     logger,
	}
}

// MonthCalendar материализует расписание клуба на календарный месяц.
// Календарь показывает и будущие вхождения, поэтому кап на "сейчас"
// здесь не применяется
func (s *ScheduleService) MonthCalendar(ctx context.Context, sess *model.Session, teamID *uuid.UUID, year int, month time.Month) (*CalendarResult, error) {
	w := schedule.MonthWindow(year, month, time.UTC)
	return s.expandRange(ctx, sess, teamID, w, schedule.ExpandOptions{})
}

// RangeCalendar материализует расписание на произвольный интервал дат
func (s *ScheduleService) RangeCalendar(ctx context.Context, sess *model.Session, teamID *uuid.UUID, from, to time.Time) (*CalendarResult, error) {
	w, err := schedule.NewWindow(from, to)
	if err != nil {
		return nil, fmt.Errorf("calendar window: %w", err)
	}
	return s.expandRange(ctx, sess, teamID, w, schedule.ExpandOptions{})
}

func (s *ScheduleService) expandRange(ctx context.Context, sess *model.Session, teamID *uuid.UUID, w schedule.Window, opts schedule.ExpandOptions) (*CalendarResult, error) {
	activities, err := s.activities.GetForRange(ctx, sess.ClubID, teamID, w.Start, w.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}

	result := &CalendarResult{}
	for _, a := range activities {
		instances, err := schedule.Expand(a, w, opts)
		if err != nil {
			if errors.Is(err, schedule.ErrMalformedRule) {
				// Пропускаем только это событие, остальные обрабатываем дальше
				s.logger.Warn("Skipping activity with malformed recurrence rule",
					zap.String("activity_id", a.ID),
					zap.Error(err),
				)
				skippedActivities.Inc()
				result.SkippedActivities = append(result.SkippedActivities, a.ID)
				continue
			}
			return nil, fmt.Errorf("expand activity %s: %w", a.ID, err)
		}
		result.Instances = append(result.Instances, instances...)
	}

	sort.Slice(result.Instances, func(i, j int) bool {
		a, b := result.Instances[i], result.Instances[j]
		if !a.OccurrenceTime.Equal(b.OccurrenceTime) {
			return a.OccurrenceTime.Before(b.OccurrenceTime)
		}
		return a.InstanceID < b.InstanceID
	})

	return result, nil
}
