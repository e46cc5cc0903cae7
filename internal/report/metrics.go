package report

import "github.com/prometheus/client_golang/prometheus"

var (
	unmatchedRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clubdesk",
		Subsystem: "report",
		Name:      "attendance_records_unmatched_total",
		Help:      "Attendance records that matched no materialized instance.",
	})

	ambiguousMatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clubdesk",
		Subsystem: "report",
		Name:      "attendance_matches_ambiguous_total",
		Help:      "Attendance records that matched more than one instance at the same tier.",
	})
)

func init() {
	prometheus.MustRegister(unmatchedRecords, ambiguousMatches)
}

// ObserveReconcile обновляет счётчики по результату сверки
func ObserveReconcile(result ReconcileResult) {
	unmatchedRecords.Add(float64(len(result.Unmatched)))
	ambiguousMatches.Add(float64(len(result.Ambiguous)))
}
