package products

import (
	"errors"
	"log"
	"net/http"

	"needwise/dataservice"
	"needwise/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the read-only product catalog.
type Handler struct {
	Svc dataservice.Service
}

// GetProducts lists the catalog; ?q= searches, ?category= filters.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var err error
	var products interface{}
	switch {
	case q != "":
		products, err = h.Svc.SearchProducts(ctx, q)
	case category != "":
		products, err = h.Svc.GetProductsByCategory(ctx, category)
	default:
		products, err = h.Svc.GetAllProducts(ctx)
	}
	if err != nil {
		log.Printf("products: data service error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, err := h.Svc.GetProductByID(r.Context(), ps.ByName("productid"))
	if errors.Is(err, dataservice.ErrProductNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		log.Printf("products: data service error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

func (h *Handler) GetAlternatives(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	alts, err := h.Svc.GetProductAlternatives(r.Context(), ps.ByName("productid"))
	if errors.Is(err, dataservice.ErrProductNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		log.Printf("products: data service error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "data service unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"alternatives": alts})
}
