package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	skippedActivities = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clubdesk",
		Subsystem: "schedule",
		Name:      "activities_skipped_total",
		Help:      "Activities skipped during expansion because of a malformed recurrence rule.",
	})

	analyticsRefreshGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "clubdesk",
		Subsystem: "report",
		Name:      "last_analytics_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the most recent background analytics refresh.",
	})
)

func init() {
	prometheus.MustRegister(skippedActivities, analyticsRefreshGauge)
}

// RecordAnalyticsRefresh обновляет отметку последнего фонового пересчёта
func RecordAnalyticsRefresh(ts time.Time) {
	if ts.IsZero() {
		return
	}
	analyticsRefreshGauge.Set(float64(ts.Unix()))
}
