package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type playerRequest struct {
	TeamID      string     `json:"team_id" validate:"required,uuid"`
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name"`
	BirthDate   *time.Time `json:"birth_date"`
	ParentName  string     `json:"parent_name"`
	ParentPhone string     `json:"parent_phone"`
	IsActive    *bool      `json:"is_active"`
}

func (c *Controller) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	teamID, err := optionalTeamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team_id")
		return
	}

	players, err := c.clubService.GetPlayers(r.Context(), sess, teamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, players)
}

func (c *Controller) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	teamID, _ := uuid.Parse(req.TeamID)
	player := &model.Player{
		TeamID:      teamID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		BirthDate:   req.BirthDate,
		ParentName:  req.ParentName,
		ParentPhone: req.ParentPhone,
	}

	if err := c.clubService.CreatePlayer(r.Context(), sess, player); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, player)
}

func (c *Controller) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	playerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	teamID, _ := uuid.Parse(req.TeamID)
	player := &model.Player{
		ID:          playerID,
		TeamID:      teamID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		BirthDate:   req.BirthDate,
		ParentName:  req.ParentName,
		ParentPhone: req.ParentPhone,
		IsActive:    true,
	}
	if req.IsActive != nil {
		player.IsActive = *req.IsActive
	}

	if err := c.clubService.UpdatePlayer(r.Context(), sess, player); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (c *Controller) handleDeactivatePlayer(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	playerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	if err := c.clubService.DeactivatePlayer(r.Context(), sess, playerID); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// optionalTeamID разбирает query-параметр team_id, если он передан
func optionalTeamID(r *http.Request) (*uuid.UUID, error) {
	raw := r.URL.Query().Get("team_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
