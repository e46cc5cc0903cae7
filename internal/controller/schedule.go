package controller

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/controller/render"
)

// monthParams разбирает query-параметры year и month;
// по умолчанию берётся текущий месяц
func monthParams(r *http.Request) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		year = y
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		if m < 1 || m > 12 {
			return 0, 0, strconv.ErrRange
		}
		month = time.Month(m)
	}
	return year, month, nil
}

func (c *Controller) handleMonthCalendar(w http.ResponseWriter, r *http.Request) {
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
	teamID, err := optionalTeamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team_id")
		return
	}

	result, err := c.scheduleService.MonthCalendar(r.Context(), sess, teamID, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (c *Controller) handleMonthCalendarImage(w http.ResponseWriter, r *http.Request) {
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
	teamID, err := optionalTeamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team_id")
		return
	}

	result, err := c.scheduleService.MonthCalendar(r.Context(), sess, teamID, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	png, err := render.MonthCalendarPNG(sess.ClubName, year, month, result.Instances)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		c.logger.Warn("ошибка записи изображения календаря", zap.Error(err))
	}
}
