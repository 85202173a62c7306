package impact

import (
	"log"
	"net/http"

	"needwise/dataservice"
	"needwise/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the dashboard aggregates.
type Handler struct {
	Svc dataservice.Service
}

func (h *Handler) GetCommunityImpact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.Svc.GetCommunityImpact(r.Context())
	if err != nil {
		log.Printf("impact: data service error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetMyImpact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	stats, err := h.Svc.GetImpactStats(r.Context(), userID)
	if err != nil {
		log.Printf("impact: data service error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}
