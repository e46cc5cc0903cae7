package controller

import (
	"net/http"
	"time"
)

// rangeParams разбирает from/to в формате YYYY-MM-DD;
// по умолчанию берутся последние 30 дней
func rangeParams(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}

func (c *Controller) handleAttendanceReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	from, to, err := rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from or to date")
		return
	}
	teamID, err := optionalTeamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team_id")
		return
	}

	rep, err := c.reportService.AttendanceStats(r.Context(), sess, teamID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (c *Controller) handlePaymentReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	year, month, err := monthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year or month")
		return
	}

	summary, err := c.reportService.PaymentComplianceReport(r.Context(), sess, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (c *Controller) handleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	overview, err := c.reportService.AnalyticsOverviewReport(r.Context(), sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, overview)
}
