package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type activityRequest struct {
	TeamID       string     `json:"team_id" validate:"required,uuid"`
	Title        string     `json:"title" validate:"required"`
	Type         string     `json:"type" validate:"required,oneof=training game tournament other"`
	Location     string     `json:"location"`
	StartTime    time.Time  `json:"start_time" validate:"required"`
	DurationText string     `json:"duration_text"`
	IsRepeating  bool       `json:"is_repeating"`
	RepeatType   string     `json:"repeat_type" validate:"omitempty,oneof=daily weekly monthly"`
	RepeatDays   []int      `json:"repeat_days" validate:"omitempty,dive,min=0,max=6"`
	RepeatUntil  *time.Time `json:"repeat_until"`
}

func (c *Controller) toActivity(req *activityRequest) *model.Activity {
	teamID, _ := uuid.Parse(req.TeamID)
	return &model.Activity{
		TeamID:       teamID,
		Title:        req.Title,
		Type:         model.ActivityType(req.Type),
		Location:     req.Location,
		StartTime:    req.StartTime,
		DurationText: req.DurationText,
		IsRepeating:  req.IsRepeating,
		RepeatType:   model.RepeatType(req.RepeatType),
		RepeatDays:   req.RepeatDays,
		RepeatUntil:  req.RepeatUntil,
	}
}

func (c *Controller) decodeActivity(w http.ResponseWriter, r *http.Request) (*activityRequest, bool) {
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	// правило повторения обязано быть полным: тип и дата окончания
	// задаются вместе с флагом, дни недели только для weekly
	if req.IsRepeating {
		if req.RepeatType == "" {
			writeError(w, http.StatusBadRequest, "repeat_type is required for repeating activity")
			return nil, false
		}
		if req.RepeatUntil == nil {
			writeError(w, http.StatusBadRequest, "repeat_until is required for repeating activity")
			return nil, false
		}
	}
	if len(req.RepeatDays) > 0 && req.RepeatType != string(model.RepeatTypeWeekly) {
		writeError(w, http.StatusBadRequest, "repeat_days is allowed only for weekly repetition")
		return nil, false
	}
	return &req, true
}

func (c *Controller) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	req, ok := c.decodeActivity(w, r)
	if !ok {
		return
	}

	activity := c.toActivity(req)
	if err := c.clubService.CreateActivity(r.Context(), sess, activity); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

func (c *Controller) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	activityID := mux.Vars(r)["id"]
	if activityID == "" {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	req, ok := c.decodeActivity(w, r)
	if !ok {
		return
	}

	activity := c.toActivity(req)
	activity.ID = activityID
	if err := c.clubService.UpdateActivity(r.Context(), sess, activity); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, activity)
}

func (c *Controller) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	activityID := mux.Vars(r)["id"]
	if activityID == "" {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := c.clubService.DeleteActivity(r.Context(), sess, activityID); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
