package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type stubActivitySource struct {
	activities []*model.Activity
}

func (s *stubActivitySource) GetForRange(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _, _ time.Time) ([]*model.Activity, error) {
	return s.activities, nil
}

func (s *stubActivitySource) GetByID(_ context.Context, id string) (*model.Activity, error) {
	for _, a := range s.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func testSession() *model.Session {
	return &model.Session{
		UserID:   "u1",
		Role:     model.RoleClubAdmin,
		ClubID:   uuid.New(),
		ClubName: "Метеор",
	}
}

func TestMonthCalendarMergesAndSorts(t *testing.T) {
	until := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	source := &stubActivitySource{activities: []*model.Activity{
		{
			ID:        "B1",
			Title:     "Игра",
			StartTime: time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC),
			Type:      model.ActivityTypeGame,
		},
		{
			ID:          "A1",
			Title:       "Тренировка",
			StartTime:   time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC),
			Type:        model.ActivityTypeTraining,
			IsRepeating: true,
			RepeatType:  model.RepeatTypeWeekly,
			RepeatDays:  []int{1},
			RepeatUntil: &until,
		},
	}}

	svc := NewScheduleService(source, zap.NewNop())

	result, err := svc.MonthCalendar(context.Background(), testSession(), nil, 2024, time.January)
	require.NoError(t, err)
	require.Empty(t, result.SkippedActivities)
	require.Len(t, result.Instances, 6) // 5 понедельников + одиночная игра

	for i := 1; i < len(result.Instances); i++ {
		require.False(t, result.Instances[i].OccurrenceTime.Before(result.Instances[i-1].OccurrenceTime))
	}
}

func TestMonthCalendarSkipsMalformedActivity(t *testing.T) {
	source := &stubActivitySource{activities: []*model.Activity{
		{
			ID:          "BAD",
			StartTime:   time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC),
			IsRepeating: true,
			RepeatType:  "biweekly",
		},
		{
			ID:        "OK",
			StartTime: time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC),
		},
	}}

	svc := NewScheduleService(source, zap.NewNop())

	result, err := svc.MonthCalendar(context.Background(), testSession(), nil, 2024, time.January)
	require.NoError(t, err)
	require.Equal(t, []string{"BAD"}, result.SkippedActivities)
	require.Len(t, result.Instances, 1)
	require.Equal(t, "OK", result.Instances[0].InstanceID)
}

func TestRangeCalendarRejectsReversedBounds(t *testing.T) {
	svc := NewScheduleService(&stubActivitySource{}, zap.NewNop())

	_, err := svc.RangeCalendar(
		context.Background(),
		testSession(),
		nil,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	)
	require.Error(t, err)
}
