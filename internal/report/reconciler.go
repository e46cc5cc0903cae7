package report

import (
	"strings"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

// MatchTier показывает по какому правилу запись посещаемости
// привязана к вхождению
type MatchTier int

const (
	// MatchTierExact точное совпадение составного идентификатора
	MatchTierExact MatchTier = 1
	// MatchTierLegacy голый id события - legacy запись, привязывается
	// только к исходному (несгенерированному) вхождению
	MatchTierLegacy MatchTier = 2
	// MatchTierPrefix совпадение по префиксу "<id>-" для старых
	// составных форматов
	MatchTierPrefix MatchTier = 3
)

// MatchedPair запись посещаемости, привязанная ровно к одному вхождению
type MatchedPair struct {
	Instance model.ActivityInstance
	Record   model.AttendanceRecord
	Tier     MatchTier
}

// ReconcileResult результат сверки. Непривязанные и неоднозначные записи
// не теряются молча - они возвращаются отдельно, чтобы отчёт мог показать
// их количество
type ReconcileResult struct {
	Pairs     []MatchedPair
	Unmatched []model.AttendanceRecord
	Ambiguous []model.AttendanceRecord
}

// Reconcile привязывает записи посещаемости к материализованным вхождениям.
// Правила пробуются строго по порядку: точный идентификатор, затем legacy
// голый id, затем префикс. Если на каком-то уровне кандидатов больше одного,
// запись помечается неоднозначной, а не привязывается к первому попавшемуся.
// Чистая функция: повторный вызов на тех же данных даёт тот же результат
func Reconcile(instances []model.ActivityInstance, records []model.AttendanceRecord) ReconcileResult {
	byInstanceID := make(map[string][]int, len(instances))
	originalByActivity := make(map[string][]int)
	byActivity := make(map[string][]int)

	for i, inst := range instances {
		byInstanceID[inst.InstanceID] = append(byInstanceID[inst.InstanceID], i)
		byActivity[inst.SourceActivityID] = append(byActivity[inst.SourceActivityID], i)
		if !inst.IsGenerated {
			originalByActivity[inst.SourceActivityID] = append(originalByActivity[inst.SourceActivityID], i)
		}
	}

	var result ReconcileResult
	for _, rec := range records {
		candidates, tier := matchCandidates(rec, instances, byInstanceID, originalByActivity, byActivity)
		switch {
		case len(candidates) == 1:
			result.Pairs = append(result.Pairs, MatchedPair{
				Instance: instances[candidates[0]],
				Record:   rec,
				Tier:     tier,
			})
		case len(candidates) > 1:
			result.Ambiguous = append(result.Ambiguous, rec)
		default:
			result.Unmatched = append(result.Unmatched, rec)
		}
	}

	return result
}

// matchCandidates возвращает кандидатов первого сработавшего правила
func matchCandidates(
	rec model.AttendanceRecord,
	instances []model.ActivityInstance,
	byInstanceID, originalByActivity, byActivity map[string][]int,
) ([]int, MatchTier) {
	if idxs, ok := byInstanceID[rec.ActivityID]; ok && len(idxs) > 0 {
		return idxs, MatchTierExact
	}

	if idxs, ok := originalByActivity[rec.ActivityID]; ok && len(idxs) > 0 {
		return idxs, MatchTierLegacy
	}

	// Префиксное правило: идентификатор записи начинается с "<activity_id>-".
	// Перебираем только вхождения тех событий, чей id является префиксом
	var prefixed []int
	for activityID, idxs := range byActivity {
		if strings.HasPrefix(rec.ActivityID, activityID+"-") {
			prefixed = append(prefixed, idxs...)
		}
	}
	return prefixed, MatchTierPrefix
}
