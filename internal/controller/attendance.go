package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type attendanceRequest struct {
	ActivityID string     `json:"activity_id" validate:"required"`
	PlayerID   string     `json:"player_id" validate:"required,uuid"`
	Status     string     `json:"status" validate:"required,oneof=present absent"`
	ActualDate *time.Time `json:"actual_date"`
}

func (c *Controller) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	playerID, _ := uuid.Parse(req.PlayerID)
	rec := &model.AttendanceRecord{
		ActivityID: req.ActivityID,
		PlayerID:   playerID,
		Status:     model.AttendanceStatus(req.Status),
	}
	if req.ActualDate != nil {
		rec.ActualDate = *req.ActualDate
	}

	if err := c.clubService.MarkAttendance(r.Context(), sess, rec); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (c *Controller) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	activityID := r.URL.Query().Get("activity_id")
	if activityID == "" {
		writeError(w, http.StatusBadRequest, "activity_id is required")
		return
	}

	records, err := c.clubService.GetAttendance(r.Context(), sess, activityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (c *Controller) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := c.clubService.DeleteAttendance(r.Context(), sess, id); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
