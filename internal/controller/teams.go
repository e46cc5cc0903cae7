package controller

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type teamRequest struct {
	Name      string `json:"name" validate:"required"`
	AgeGroup  string `json:"age_group"`
	CoachName string `json:"coach_name"`
	IsActive  *bool  `json:"is_active"`
}

func (c *Controller) handleListTeams(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	teams, err := c.clubService.GetTeams(r.Context(), sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, teams)
}

func (c *Controller) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	team := &model.Team{
		Name:      req.Name,
		AgeGroup:  req.AgeGroup,
		CoachName: req.CoachName,
	}

	if err := c.clubService.CreateTeam(r.Context(), sess, team); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, team)
}

func (c *Controller) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	teamID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	team := &model.Team{
		ID:        teamID,
		Name:      req.Name,
		AgeGroup:  req.AgeGroup,
		CoachName: req.CoachName,
		IsActive:  true,
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}

	if err := c.clubService.UpdateTeam(r.Context(), sess, team); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, team)
}

func (c *Controller) handleListTeamActivities(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	teamID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	activities, err := c.clubService.GetTeamActivities(r.Context(), sess, teamID)
	if err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

func (c *Controller) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	teamID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	if err := c.clubService.DeleteTeam(r.Context(), sess, teamID); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
