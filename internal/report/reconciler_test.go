package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

func instance(id, source string, generated bool, occ time.Time) model.ActivityInstance {
	return model.ActivityInstance{
		InstanceID:       id,
		SourceActivityID: source,
		OccurrenceTime:   occ,
		IsGenerated:      generated,
	}
}

func mondaySeries() []model.ActivityInstance {
	base := time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC)
	return []model.ActivityInstance{
		instance("A1", "A1", false, base),
		instance("A1-20240108", "A1", true, base.AddDate(0, 0, 7)),
		instance("A1-20240115", "A1", true, base.AddDate(0, 0, 14)),
		instance("A1-20240122", "A1", true, base.AddDate(0, 0, 21)),
		instance("A1-20240129", "A1", true, base.AddDate(0, 0, 28)),
	}
}

func TestReconcileExactMatch(t *testing.T) {
	records := []model.AttendanceRecord{
		{ActivityID: "A1-20240108", Status: model.AttendanceStatusPresent},
	}

	result := Reconcile(mondaySeries(), records)
	require.Len(t, result.Pairs, 1)
	require.Empty(t, result.Unmatched)
	require.Empty(t, result.Ambiguous)
	require.Equal(t, "A1-20240108", result.Pairs[0].Instance.InstanceID)
	require.Equal(t, MatchTierExact, result.Pairs[0].Tier)
}

func TestReconcileLegacyBareIDMatchesOriginalOnly(t *testing.T) {
	records := []model.AttendanceRecord{
		{ActivityID: "A1", Status: model.AttendanceStatusPresent},
	}

	result := Reconcile(mondaySeries(), records)
	require.Len(t, result.Pairs, 1)
	require.Empty(t, result.Ambiguous)
	require.Equal(t, "A1", result.Pairs[0].Instance.InstanceID)
	require.False(t, result.Pairs[0].Instance.IsGenerated)
	require.Equal(t, MatchTierLegacy, result.Pairs[0].Tier)
}

func TestReconcilePrefixFallbackSingleInstance(t *testing.T) {
	// Старый составной формат с дефисами в дате: точного совпадения нет,
	// в окне одно вхождение события - префиксное правило привязывает к нему
	instances := []model.ActivityInstance{
		instance("A2-20240110", "A2", true, time.Date(2024, time.January, 10, 18, 0, 0, 0, time.UTC)),
	}
	records := []model.AttendanceRecord{
		{ActivityID: "A2-2024-01-10", Status: model.AttendanceStatusAbsent},
	}

	result := Reconcile(instances, records)
	require.Len(t, result.Pairs, 1)
	require.Equal(t, MatchTierPrefix, result.Pairs[0].Tier)
}

func TestReconcilePrefixFallbackAmbiguous(t *testing.T) {
	// Несколько вхождений одного события: префикс совпадает со всеми,
	// запись помечается неоднозначной, а не привязывается к первой
	records := []model.AttendanceRecord{
		{ActivityID: "A1-2024-01-08", Status: model.AttendanceStatusPresent},
	}

	result := Reconcile(mondaySeries(), records)
	require.Empty(t, result.Pairs)
	require.Empty(t, result.Unmatched)
	require.Len(t, result.Ambiguous, 1)
}

func TestReconcileUnmatched(t *testing.T) {
	records := []model.AttendanceRecord{
		{ActivityID: "B9-20240110", Status: model.AttendanceStatusPresent},
	}

	result := Reconcile(mondaySeries(), records)
	require.Empty(t, result.Pairs)
	require.Len(t, result.Unmatched, 1)
	require.Empty(t, result.Ambiguous)
}

func TestReconcileLegacyWithoutOriginalInWindow(t *testing.T) {
	// Исходное вхождение за пределами окна: legacy запись не должна
	// привязываться к сгенерированным вхождениям
	instances := mondaySeries()[1:]
	records := []model.AttendanceRecord{
		{ActivityID: "A1", Status: model.AttendanceStatusPresent},
	}

	result := Reconcile(instances, records)
	require.Empty(t, result.Pairs)
	require.Len(t, result.Unmatched, 1)
}

func TestReconcileIdempotent(t *testing.T) {
	records := []model.AttendanceRecord{
		{ActivityID: "A1-20240108", Status: model.AttendanceStatusPresent},
		{ActivityID: "A1", Status: model.AttendanceStatusAbsent},
		{ActivityID: "A1-2024-01-15", Status: model.AttendanceStatusPresent},
		{ActivityID: "Z0", Status: model.AttendanceStatusPresent},
	}

	first := Reconcile(mondaySeries(), records)
	second := Reconcile(mondaySeries(), records)
	require.Equal(t, first, second)
	require.Len(t, first.Pairs, 2)
	require.Len(t, first.Ambiguous, 1)
	require.Len(t, first.Unmatched, 1)
}

func TestReconcileCleanFixturesNoAmbiguity(t *testing.T) {
	records := []model.AttendanceRecord{
		{ActivityID: "A1-20240108", Status: model.AttendanceStatusPresent},
		{ActivityID: "A1-20240115", Status: model.AttendanceStatusAbsent},
		{ActivityID: "A1-20240122", Status: model.AttendanceStatusPresent},
	}

	result := Reconcile(mondaySeries(), records)
	require.Len(t, result.Pairs, 3)
	require.Zero(t, len(result.Ambiguous))
	require.Zero(t, len(result.Unmatched))
}
