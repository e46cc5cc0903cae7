package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

// RateBreakdown счётчики и процент посещаемости в одном разрезе
type RateBreakdown struct {
	Present int     `json:"present"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// AttendanceSummary сводная статистика посещаемости по привязанным записям
type AttendanceSummary struct {
	OverallRate  float64                     `json:"overall_rate"`
	PresentCount int                         `json:"present_count"`
	TotalRecords int                         `json:"total_records"`
	PerTeam      map[uuid.UUID]RateBreakdown `json:"per_team"`
	PerPlayer    map[uuid.UUID]RateBreakdown `json:"per_player"`
	MonthlyTrend map[string]RateBreakdown    `json:"monthly_trend"` // ключ "Jan 2024"
}

// ComplianceSummary статус оплаты взносов за месяц
type ComplianceSummary struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	PaidCount    int     `json:"paid_count"`
	TotalPlayers int     `json:"total_players"`
	Rate         float64 `json:"rate"`
}

// SummarizeAttendance сворачивает привязанные пары в сводную статистику.
// Учитываются только привязанные записи; деление на ноль всегда даёт 0
func SummarizeAttendance(pairs []MatchedPair) AttendanceSummary {
	summary := AttendanceSummary{
		PerTeam:      make(map[uuid.UUID]RateBreakdown),
		PerPlayer:    make(map[uuid.UUID]RateBreakdown),
		MonthlyTrend: make(map[string]RateBreakdown),
	}

	for _, pair := range pairs {
		present := pair.Record.Status == model.AttendanceStatusPresent

		summary.TotalRecords++
		if present {
			summary.PresentCount++
		}

		bump(summary.PerTeam, pair.Instance.TeamID, present)
		bump(summary.PerPlayer, pair.Record.PlayerID, present)
		bump(summary.MonthlyTrend, monthKey(pair.Instance.OccurrenceTime), present)
	}

	summary.OverallRate = safeRate(summary.PresentCount, summary.TotalRecords)
	for k, v := range summary.PerTeam {
		v.Rate = safeRate(v.Present, v.Total)
		summary.PerTeam[k] = v
	}
	for k, v := range summary.PerPlayer {
		v.Rate = safeRate(v.Present, v.Total)
		summary.PerPlayer[k] = v
	}
	for k, v := range summary.MonthlyTrend {
		v.Rate = safeRate(v.Present, v.Total)
		summary.MonthlyTrend[k] = v
	}

	return summary
}

// PaymentCompliance считает долю оплативших взнос за месяц.
// Игрок без записи об оплате считается неоплатившим, а не исключается
func PaymentCompliance(players []*model.Player, payments []*model.PaymentRecord, year int, month time.Month) ComplianceSummary {
	paid := make(map[uuid.UUID]bool, len(payments))
	for _, p := range payments {
		if p.Year == year && p.Month == int(month) && p.Status == model.PaymentStatusPaid {
			paid[p.PlayerID] = true
		}
	}

	summary := ComplianceSummary{Year: year, Month: int(month)}
	for _, pl := range players {
		if !pl.IsActive {
			continue
		}
		summary.TotalPlayers++
		if paid[pl.ID] {
			summary.PaidCount++
		}
	}

	summary.Rate = safeRate(summary.PaidCount, summary.TotalPlayers)
	return summary
}

// monthKey ключ месячной корзины тренда, например "Jan 2024"
func monthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

func bump[K comparable](m map[K]RateBreakdown, key K, present bool) {
	b := m[key]
	b.Total++
	if present {
		b.Present++
	}
	m[key] = b
}

// safeRate процент без NaN: пустой знаменатель даёт 0
func safeRate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
