package rewards

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"needwise/dataservice"
	"needwise/models"
	"needwise/notify"
	"needwise/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the rewards catalog and redemption. Redemptions are held
// in memory for the session so the voucher can be printed; the codes are
// one-time and do not survive a restart.
type Handler struct {
	Svc dataservice.Service
	Bus *notify.Bus

	mu          sync.Mutex
	redemptions map[string]models.Redemption // redeemCode -> redemption
}

func NewHandler(svc dataservice.Service, bus *notify.Bus) *Handler {
	return &Handler{
		Svc:         svc,
		Bus:         bus,
		redemptions: make(map[string]models.Redemption),
	}
}

func (h *Handler) GetRewards(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rewards, err := h.Svc.GetAvailableRewards(r.Context())
	if err != nil {
		h.serviceFailure(w, utils.GetUserIDFromRequest(r), err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rewards": rewards})
}

// Redeem exchanges points for a reward. The balance check and the debit
// are one atomic operation inside the store; a stale client that skipped
// its own pre-check still cannot overdraw.
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	rewardID := ps.ByName("rewardid")

	redemption, err := h.Svc.RedeemReward(r.Context(), userID, rewardID)
	switch {
	case errors.Is(err, dataservice.ErrRewardNotFound):
		h.Bus.Add(userID, models.NotifyError, "That reward could not be found.")
		utils.RespondWithError(w, http.StatusNotFound, "reward not found")
		return
	case errors.Is(err, dataservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusConflict, "not enough eco-points")
		return
	case errors.Is(err, dataservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	case err != nil:
		h.serviceFailure(w, userID, err)
		return
	}

	h.mu.Lock()
	h.redemptions[redemption.RedeemCode] = redemption
	h.mu.Unlock()

	h.Bus.Add(userID, models.NotifySuccess,
		"You redeemed "+redemption.Reward.Name+"! Your code is "+redemption.RedeemCode+".")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"reward":     redemption.Reward,
		"redeemCode": redemption.RedeemCode,
		"newBalance": redemption.NewBalance,
	})
}

func (h *Handler) lookup(code string) (models.Redemption, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	redemption, ok := h.redemptions[code]
	return redemption, ok
}

func (h *Handler) serviceFailure(w http.ResponseWriter, userID string, err error) {
	log.Printf("rewards: data service error: %v", err)
	h.Bus.Add(userID, models.NotifyError, "The rewards service is unavailable. Please try again.")
	utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
}
