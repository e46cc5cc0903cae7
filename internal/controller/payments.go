package controller

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
)

type paymentRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid"`
	Year     int    `json:"year" validate:"required,min=2000,max=2100"`
	Month    int    `json:"month" validate:"required,min=1,max=12"`
	Status   string `json:"status" validate:"required,oneof=paid not_paid"`
}

func (c *Controller) handleSetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	playerID, _ := uuid.Parse(req.PlayerID)
	rec := &model.PaymentRecord{
		PlayerID: playerID,
		Year:     req.Year,
		Month:    req.Month,
		Status:   model.PaymentStatus(req.Status),
	}

	if err := c.clubService.SetPaymentStatus(r.Context(), sess, rec); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (c *Controller) handleListPlayerPayments(w http.ResponseWriter, r *http.Request) {
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

	payments, err := c.clubService.GetPlayerPayments(r.Context(), sess, playerID)
	if err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, payments)
}
