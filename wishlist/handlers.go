package wishlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"needwise/dataservice"
	"needwise/models"
	"needwise/notify"
	"needwise/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler owns the wishlist endpoints. All storage goes through the data
// service; all user feedback goes through the notification bus.
type Handler struct {
	Svc dataservice.Service
	Bus *notify.Bus
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	items, err := h.Svc.GetWishlist(r.Context(), userID)
	if err != nil {
		h.serviceFailure(w, userID, "load your wishlist", err)
		return
	}
	now := time.Now()
	type entry struct {
		models.WishlistItem
		CanPurchase    bool `json:"canPurchase"`
		RemainingHours int  `json:"remainingHours"`
	}
	out := make([]entry, 0, len(items))
	for _, it := range items {
		out = append(out, entry{
			WishlistItem:   it,
			CanPurchase:    CanPurchase(it, now),
			RemainingHours: RemainingHours(it, now),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": out})
}

// AddToWishlist parks a product for reflection. A product that is already
// on the list is a friendly no-op: info notification, unchanged wishlist.
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		ProductID     string `json:"productId"`
		CooldownHours int    `json:"cooldownHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	product, err := h.Svc.GetProductByID(r.Context(), req.ProductID)
	if errors.Is(err, dataservice.ErrProductNotFound) {
		h.Bus.Add(userID, models.NotifyError, "That product could not be found.")
		utils.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, "add to your wishlist", err)
		return
	}

	hours := req.CooldownHours
	if hours == 0 {
		hours = DefaultCooldownHours
		if user, uerr := h.Svc.GetCurrentUser(r.Context(), userID); uerr == nil && user.Preferences.DefaultCooldownHours > 0 {
			hours = user.Preferences.DefaultCooldownHours
		}
	}

	item, err := NewItem(req.ProductID, hours, time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("cooldown must be between %d and %d hours", MinCooldownHours, MaxCooldownHours))
		return
	}

	items, err := h.Svc.AddToWishlist(r.Context(), userID, item)
	if errors.Is(err, dataservice.ErrDuplicateWishlistItem) {
		h.Bus.Add(userID, models.NotifyInfo, "This item is already in your wishlist.")
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items, "added": false})
		return
	}
	if err != nil {
		h.serviceFailure(w, userID, "add to your wishlist", err)
		return
	}

	h.Bus.Add(userID, models.NotifySuccess,
		fmt.Sprintf("%s has been added to your wishlist with a %d-hour reflection period.", product.Name, hours))
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"items": items, "added": true})
}

// ReplaceWishlist is the bulk update from the data-service contract.
func (h *Handler) ReplaceWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Items []models.WishlistItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	items, err := h.Svc.UpdateWishlist(r.Context(), userID, req.Items)
	if err != nil {
		h.serviceFailure(w, userID, "update your wishlist", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	items, err := h.Svc.GetWishlist(r.Context(), userID)
	if err != nil {
		h.serviceFailure(w, userID, "update your wishlist", err)
		return
	}
	filtered := make([]models.WishlistItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			filtered = append(filtered, it)
		}
	}
	items, err = h.Svc.UpdateWishlist(r.Context(), userID, filtered)
	if err != nil {
		h.serviceFailure(w, userID, "update your wishlist", err)
		return
	}

	h.Bus.Add(userID, models.NotifyInfo, "Item removed from your wishlist.")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"questions": Questions})
}

// AnswerReflection flips the reflection gate and stores the answers.
// Answering again overwrites them. An absent item is a silent no-op.
func (h *Handler) AnswerReflection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Answers) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "answers are required")
		return
	}
	for id := range req.Answers {
		if !KnownQuestion(id) {
			utils.RespondWithError(w, http.StatusBadRequest, "unknown question id: "+id)
			return
		}
	}

	items, err := h.Svc.GetWishlist(r.Context(), userID)
	if err != nil {
		h.serviceFailure(w, userID, "save your reflection", err)
		return
	}
	answered := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].ReflectionAnswered = true
			items[i].ReflectionAnswers = req.Answers
			answered = true
			break
		}
	}
	if !answered {
		// Item gone in the meantime; nothing to update.
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
		return
	}

	items, err = h.Svc.UpdateWishlist(r.Context(), userID, items)
	if err != nil {
		h.serviceFailure(w, userID, "save your reflection", err)
		return
	}

	h.Bus.Add(userID, models.NotifySuccess, "Thank you for reflecting on your purchase intention!")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// UpdateCooldown moves the cooldown end, bounded to the 1–72 hour window
// from now. AddedAt never changes.
func (h *Handler) UpdateCooldown(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var req struct {
		CoolDownEnds time.Time `json:"coolDownEnds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CoolDownEnds.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "coolDownEnds is required")
		return
	}
	if err := ValidateCooldownEnd(req.CoolDownEnds, time.Now()); err != nil {
		h.Bus.Add(userID, models.NotifyError, "Failed to update reflection period.")
		utils.RespondWithError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("cooldown end must be %d–%d hours from now", MinCooldownHours, MaxCooldownHours))
		return
	}

	items, err := h.Svc.GetWishlist(r.Context(), userID)
	if err != nil {
		h.serviceFailure(w, userID, "update the reflection period", err)
		return
	}
	updated := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].CoolDownEnds = req.CoolDownEnds
			updated = true
			break
		}
	}
	if !updated {
		utils.RespondWithError(w, http.StatusNotFound, "item not on wishlist")
		return
	}

	items, err = h.Svc.UpdateWishlist(r.Context(), userID, items)
	if err != nil {
		h.serviceFailure(w, userID, "update the reflection period", err)
		return
	}

	h.Bus.Add(userID, models.NotifySuccess, "Reflection period updated successfully.")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// serviceFailure is the shared fallback for a failed data-service call:
// log it, tell the user, leave prior state alone. No automatic retry.
func (h *Handler) serviceFailure(w http.ResponseWriter, userID, action string, err error) {
	log.Printf("wishlist: data service error (%s): %v", action, err)
	h.Bus.Add(userID, models.NotifyError, "Failed to "+action+". Please try again.")
	utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
}
