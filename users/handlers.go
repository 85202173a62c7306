package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"needwise/dataservice"
	"needwise/models"
	"needwise/notify"
	"needwise/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the account record and its preferences.
type Handler struct {
	Svc dataservice.Service
	Bus *notify.Bus
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	user, err := h.Svc.GetCurrentUser(r.Context(), userID)
	if errors.Is(err, dataservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// Login is the demo stub: any non-empty email resolves an account. No
// passwords, no sessions.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	user, err := h.Svc.Login(r.Context(), req.Email)
	if errors.Is(err, dataservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.serviceFailure(w, utils.GetUserIDFromRequest(r), err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// AddEcoPoints is the raw balance adjustment from the data-service
// contract. Debits that would overdraw are refused by the store.
func (h *Handler) AddEcoPoints(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	newBalance, err := h.Svc.AddEcoPoints(r.Context(), userID, req.Points)
	switch {
	case errors.Is(err, dataservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	case errors.Is(err, dataservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusConflict, "not enough eco-points")
		return
	case err != nil:
		h.serviceFailure(w, userID, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"newBalance": newBalance})
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	updated, err := h.Svc.UpdatePreferences(r.Context(), userID, prefs)
	if errors.Is(err, dataservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	h.Bus.Add(userID, models.NotifySuccess, "Preferences saved.")
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	goals, err := h.Svc.GetSustainabilityGoals(r.Context(), userID)
	if errors.Is(err, dataservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, goals)
}

func (h *Handler) UpdateGoals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var goals models.SustainabilityGoals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	updated, err := h.Svc.UpdateSustainabilityGoals(r.Context(), userID, goals)
	if errors.Is(err, dataservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	h.Bus.Add(userID, models.NotifySuccess, "Sustainability goals updated.")
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) TrackUsage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		ProductID  string `json:"productId"`
		UsageCount int    `json:"usageCount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}
	tracked, err := h.Svc.TrackProductUsage(r.Context(), userID, req.ProductID, req.UsageCount)
	if errors.Is(err, dataservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"usageTracking": tracked})
}

func (h *Handler) serviceFailure(w http.ResponseWriter, userID string, err error) {
	log.Printf("users: data service error: %v", err)
	h.Bus.Add(userID, models.NotifyError, "The profile service is unavailable. Please try again.")
	utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
}
