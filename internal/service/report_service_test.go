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

type stubAttendanceSource struct {
	records []model.AttendanceRecord
}

// повторяет семантику репозитория: интервал [from, to)
func (s *stubAttendanceSource) GetByClubForRange(_ context.Context, _ uuid.UUID, from, to time.Time) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range s.records {
		if !rec.ActualDate.Before(from) && rec.ActualDate.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubPaymentSource struct {
	payments []*model.PaymentRecord
}

func (s *stubPaymentSource) GetByMonth(_ context.Context, _ uuid.UUID, _, _ int) ([]*model.PaymentRecord, error) {
	return s.payments, nil
}

type stubRosterSource struct {
	players []*model.Player
}

func (s *stubRosterSource) GetByClubID(_ context.Context, _ uuid.UUID, _ *uuid.UUID) ([]*model.Player, error) {
	return s.players, nil
}

type stubTeamSource struct {
	teams []*model.Team
}

func (s *stubTeamSource) GetByClubID(_ context.Context, _ uuid.UUID) ([]*model.Team, error) {
	return s.teams, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)
}

func newTestReportService(activities *stubActivitySource, attendance *stubAttendanceSource, payments *stubPaymentSource, roster *stubRosterSource, teams *stubTeamSource) *ReportService {
	svc := NewReportService(activities, attendance, payments, roster, teams, zap.NewNop())
	svc.now = fixedNow
	return svc
}

func TestAttendanceStatsEndToEnd(t *testing.T) {
	p1 := uuid.New()
	until := time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)
	activities := &stubActivitySource{activities: []*model.Activity{
		{
			ID:          "A1",
			StartTime:   time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC),
			Type:        model.ActivityTypeTraining,
			IsRepeating: true,
			RepeatType:  model.RepeatTypeWeekly,
			RepeatDays:  []int{1},
			RepeatUntil: &until,
		},
	}}
	attendance := &stubAttendanceSource{records: []model.AttendanceRecord{
		{ActivityID: "A1-20240108", PlayerID: p1, Status: model.AttendanceStatusPresent, ActualDate: time.Date(2024, time.January, 8, 18, 30, 0, 0, time.UTC)},
		{ActivityID: "A1", PlayerID: p1, Status: model.AttendanceStatusAbsent, ActualDate: time.Date(2024, time.January, 1, 18, 30, 0, 0, time.UTC)}, // legacy
		{ActivityID: "GONE", PlayerID: p1, Status: model.AttendanceStatusPresent, ActualDate: time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC)},
	}}

	svc := newTestReportService(activities, attendance, &stubPaymentSource{}, &stubRosterSource{}, &stubTeamSource{})

	sess := testSession()
	reportOut, err := svc.AttendanceStats(
		context.Background(),
		sess,
		nil,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.Equal(t, 2, reportOut.Summary.TotalRecords)
	require.Equal(t, 1, reportOut.Summary.PresentCount)
	require.InDelta(t, 50.0, reportOut.Summary.OverallRate, 0.001)
	require.Equal(t, 1, reportOut.UnmatchedCount)
	require.Zero(t, reportOut.AmbiguousCount)
	require.Empty(t, reportOut.SkippedActivities)

	require.InDelta(t, 50.0, reportOut.Summary.MonthlyTrend["Jan 2024"].Rate, 0.001)
}

func TestAttendanceStatsSkipsMalformedAndContinues(t *testing.T) {
	p1 := uuid.New()
	activities := &stubActivitySource{activities: []*model.Activity{
		{
			ID:          "BAD",
			StartTime:   time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC),
			IsRepeating: true,
			RepeatType:  model.RepeatTypeWeekly,
			RepeatDays:  []int{9},
		},
		{
			ID:        "OK",
			StartTime: time.Date(2024, time.January, 10, 18, 0, 0, 0, time.UTC),
		},
	}}
	attendance := &stubAttendanceSource{records: []model.AttendanceRecord{
		{ActivityID: "OK", PlayerID: p1, Status: model.AttendanceStatusPresent, ActualDate: time.Date(2024, time.January, 10, 18, 15, 0, 0, time.UTC)},
	}}

	svc := newTestReportService(activities, attendance, &stubPaymentSource{}, &stubRosterSource{}, &stubTeamSource{})

	reportOut, err := svc.AttendanceStats(
		context.Background(),
		testSession(),
		nil,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"BAD"}, reportOut.SkippedActivities)
	require.Equal(t, 1, reportOut.Summary.TotalRecords)
}

func TestAttendanceStatsCapsAtNow(t *testing.T) {
	// "Сейчас" - 1 февраля: февральские вхождения не материализуются.
	// Отметка за 5 февраля теряет точное совпадение и по префиксному
	// правилу привязывается к единственному январскому вхождению
	p1 := uuid.New()
	activities := &stubActivitySource{activities: []*model.Activity{
		{
			ID:          "A1",
			StartTime:   time.Date(2024, time.January, 29, 18, 0, 0, 0, time.UTC),
			IsRepeating: true,
			RepeatType:  model.RepeatTypeWeekly,
		},
	}}
	attendance := &stubAttendanceSource{records: []model.AttendanceRecord{
		{ActivityID: "A1-20240205", PlayerID: p1, Status: model.AttendanceStatusPresent, ActualDate: time.Date(2024, time.February, 5, 18, 0, 0, 0, time.UTC)},
	}}

	svc := newTestReportService(activities, attendance, &stubPaymentSource{}, &stubRosterSource{}, &stubTeamSource{})

	reportOut, err := svc.AttendanceStats(
		context.Background(),
		testSession(),
		nil,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Equal(t, 1, reportOut.Summary.TotalRecords)
	require.Zero(t, reportOut.UnmatchedCount)
	require.Contains(t, reportOut.Summary.MonthlyTrend, "Jan 2024")
	require.NotContains(t, reportOut.Summary.MonthlyTrend, "Feb 2024")
}

func TestAttendanceStatsIncludesLastWindowDay(t *testing.T) {
	// Окно инклюзивно по датам, а отметка несёт время суток:
	// запись за 18:00 последнего дня окна должна попасть в отчёт
	p1 := uuid.New()
	activities := &stubActivitySource{activities: []*model.Activity{
		{
			ID:        "A1",
			StartTime: time.Date(2024, time.January, 31, 17, 0, 0, 0, time.UTC),
			Type:      model.ActivityTypeTraining,
		},
	}}
	attendance := &stubAttendanceSource{records: []model.AttendanceRecord{
		{ActivityID: "A1", PlayerID: p1, Status: model.AttendanceStatusPresent, ActualDate: time.Date(2024, time.January, 31, 18, 0, 0, 0, time.UTC)},
	}}

	svc := newTestReportService(activities, attendance, &stubPaymentSource{}, &stubRosterSource{}, &stubTeamSource{})

	reportOut, err := svc.AttendanceStats(
		context.Background(),
		testSession(),
		nil,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Equal(t, 1, reportOut.Summary.TotalRecords)
	require.Equal(t, 1, reportOut.Summary.PresentCount)
	require.Zero(t, reportOut.UnmatchedCount)
	require.InDelta(t, 100.0, reportOut.Summary.OverallRate, 0.001)
}

func TestAnalyticsOverviewReport(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	roster := &stubRosterSource{players: []*model.Player{
		{ID: p1, IsActive: true},
		{ID: p2, IsActive: true},
		{ID: uuid.New(), IsActive: false},
	}}
	payments := &stubPaymentSource{payments: []*model.PaymentRecord{
		{PlayerID: p1, Year: 2024, Month: 2, Status: model.PaymentStatusPaid},
	}}
	teams := &stubTeamSource{teams: []*model.Team{{ID: uuid.New()}, {ID: uuid.New()}}}

	svc := newTestReportService(&stubActivitySource{}, &stubAttendanceSource{}, payments, roster, teams)

	overview, err := svc.AnalyticsOverviewReport(context.Background(), testSession())
	require.NoError(t, err)
	require.Equal(t, 2, overview.TeamsCount)
	require.Equal(t, 2, overview.PlayersCount)
	require.Equal(t, 1, overview.Payments.PaidCount)
	require.InDelta(t, 50.0, overview.Payments.Rate, 0.001)
	require.Zero(t, overview.Attendance.Summary.OverallRate) // нет записей - 0, не NaN
	require.Equal(t, fixedNow(), overview.GeneratedAt)
}
