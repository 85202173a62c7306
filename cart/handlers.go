package cart

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
	"needwise/wishlist"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the cart endpoints. Adds are gated by the wishlist state
// machine, but only for products currently parked on the wishlist; a
// direct add of anything else goes straight through.
type Handler struct {
	Store *Store
	Svc   dataservice.Service
	Bus   *notify.Bus
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": h.Store.List(userID)})
}

// AddToCart moves a product into the cart. For wishlisted products both
// gates must have cleared; the wishlist entry stays where it is either
// way, as a record of the reflection.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		ProductID string `json:"productId"`
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
		h.serviceFailure(w, userID, err)
		return
	}

	items, err := h.Svc.GetWishlist(r.Context(), userID)
	if err != nil {
		h.serviceFailure(w, userID, err)
		return
	}
	now := time.Now()
	for _, it := range items {
		if it.ProductID != req.ProductID {
			continue
		}
		switch gateErr := wishlist.PurchaseGate(it, now); {
		case errors.Is(gateErr, wishlist.ErrCooldownActive):
			h.Bus.Add(userID, models.NotifyWarning,
				fmt.Sprintf("Please wait %d more hours before purchasing this item.", wishlist.RemainingHours(it, now)))
			utils.RespondWithError(w, http.StatusConflict, "cooldown still active")
			return
		case errors.Is(gateErr, wishlist.ErrReflectionIncomplete):
			h.Bus.Add(userID, models.NotifyWarning,
				"Please answer the reflection questions before adding to cart.")
			utils.RespondWithError(w, http.StatusConflict, "reflection not answered")
			return
		}
		break
	}

	lines := h.Store.Add(userID, product)
	h.Bus.Add(userID, models.NotifySuccess, product.Name+" added to your cart.")
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"items": lines})
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	lines := h.Store.SetQuantity(userID, productID, req.Quantity)
	if req.Quantity < 1 {
		h.Bus.Add(userID, models.NotifyInfo, "Item removed from your cart.")
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": lines})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	lines := h.Store.Remove(userID, productID)
	h.Bus.Add(userID, models.NotifyInfo, "Item removed from your cart.")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": lines})
}

func (h *Handler) serviceFailure(w http.ResponseWriter, userID string, err error) {
	log.Printf("cart: data service error: %v", err)
	h.Bus.Add(userID, models.NotifyError, "Failed to update your cart. Please try again.")
	utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
}
