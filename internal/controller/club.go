package controller

import (
	"encoding/json"
	"net/http"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type clubRequest struct {
	Name string `json:"name" validate:"required"`
	City string `json:"city"`
}

func (c *Controller) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	var req clubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	club := &model.Club{
		Name: req.Name,
		City: req.City,
	}

	if err := c.clubService.CreateClub(r.Context(), sess, club); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, club)
}

func (c *Controller) handleGetClub(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	club, err := c.clubService.GetClub(r.Context(), sess)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, club)
}
