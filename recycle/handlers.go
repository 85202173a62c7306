package recycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"needwise/dataservice"
	"needwise/models"
	"needwise/notify"
	"needwise/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the smart-bin intake flow: rates, drop-offs, history.
type Handler struct {
	Svc dataservice.Service
	Bus *notify.Bus
}

func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rates, err := h.Svc.GetRecyclingRates(r.Context())
	if err != nil {
		h.serviceFailure(w, utils.GetUserIDFromRequest(r), err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rates": rates})
}

// RecordRecycling accepts one smart-bin drop-off. The record and its
// credit come back from a single store transaction, so the response always
// reflects both or neither.
func (h *Handler) RecordRecycling(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Material models.Material `json:"material"`
		Weight   float64         `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	record, newBalance, err := h.Svc.RecordRecycling(r.Context(), userID, req.Material, req.Weight)
	switch {
	case errors.Is(err, dataservice.ErrInvalidMaterial):
		utils.RespondWithError(w, http.StatusBadRequest, "material must be plastic, paper, glass, metal or electronics")
		return
	case errors.Is(err, dataservice.ErrInvalidWeight):
		utils.RespondWithError(w, http.StatusBadRequest, "weight must be between 0.1 and 10 kg")
		return
	case errors.Is(err, dataservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	case err != nil:
		h.serviceFailure(w, userID, err)
		return
	}

	h.Bus.Add(userID, models.NotifySuccess,
		fmt.Sprintf("You earned %d eco-points for recycling %.1f kg of %s!", record.Points, record.Weight, record.Material))
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"record":     record,
		"newBalance": newBalance,
	})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	history, err := h.Svc.GetRecyclingHistory(r.Context(), userID)
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"history": history})
}

func (h *Handler) serviceFailure(w http.ResponseWriter, userID string, err error) {
	log.Printf("recycle: data service error: %v", err)
	h.Bus.Add(userID, models.NotifyError, "The recycling service is unavailable. Please try again.")
	utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
}
