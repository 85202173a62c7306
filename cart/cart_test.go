package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"needwise/dataservice"
	"needwise/globals"
	"needwise/models"
	"needwise/notify"
	"needwise/wishlist"
)

func TestStoreAddBumpsQuantity(t *testing.T) {
	s := NewStore()
	p := models.Product{ProductID: "1", Name: "Bamboo Water Bottle", Price: 24.99}

	lines := s.Add("u1", p)
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("first add: %+v", lines)
	}

	lines = s.Add("u1", p)
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("second add should bump quantity, got %+v", lines)
	}
}

func TestStoreSetQuantityBelowOneRemoves(t *testing.T) {
	s := NewStore()
	s.Add("u1", models.Product{ProductID: "1", Name: "Bottle"})

	lines := s.SetQuantity("u1", "1", 3)
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}

	lines = s.SetQuantity("u1", "1", 0)
	if len(lines) != 0 {
		t.Fatalf("quantity zero should remove the line, got %+v", lines)
	}
}

func TestStoreRemoveAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Add("u1", models.Product{ProductID: "1", Name: "Bottle"})

	lines := s.Remove("u1", "nope")
	if len(lines) != 1 {
		t.Fatalf("removing an absent product changed the cart: %+v", lines)
	}
}

// newHandler wires the handler to a zero-latency stub backend.
func newHandler(t *testing.T) (*Handler, dataservice.Service) {
	t.Helper()
	svc := dataservice.NewMemory(0)
	bus := notify.NewBus(nil)
	t.Cleanup(bus.Stop)
	return &Handler{Store: NewStore(), Svc: svc, Bus: bus}, svc
}

func postAddToCart(t *testing.T, h *Handler, productID string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"productId": productID})
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, "u1"))
	rr := httptest.NewRecorder()
	h.AddToCart(rr, req, nil)
	return rr
}

func TestAddToCartUnwishlistedGoesThrough(t *testing.T) {
	h, _ := newHandler(t)

	rr := postAddToCart(t, h, "1")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(h.Store.List("u1")) != 1 {
		t.Fatal("cart should hold the product")
	}
}

func TestAddToCartBlockedByCooldown(t *testing.T) {
	h, svc := newHandler(t)

	item, _ := wishlist.NewItem("1", 24, time.Now())
	if _, err := svc.AddToWishlist(context.Background(), "u1", item); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}

	rr := postAddToCart(t, h, "1")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 while cooldown runs, got %d", rr.Code)
	}
	if len(h.Store.List("u1")) != 0 {
		t.Fatal("blocked add must not touch the cart")
	}

	// the user is told how long to wait
	notifs := h.Bus.List("u1")
	if len(notifs) == 0 || notifs[len(notifs)-1].Type != models.NotifyWarning {
		t.Fatalf("expected a warning notification, got %+v", notifs)
	}
}

func TestAddToCartBlockedByReflection(t *testing.T) {
	h, svc := newHandler(t)

	// cooldown already elapsed, reflection still pending
	item := models.WishlistItem{
		ProductID:    "1",
		AddedAt:      time.Now().Add(-48 * time.Hour),
		CoolDownEnds: time.Now().Add(-24 * time.Hour),
	}
	if _, err := svc.AddToWishlist(context.Background(), "u1", item); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}

	rr := postAddToCart(t, h, "1")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 while reflection pending, got %d", rr.Code)
	}
}

func TestAddToCartBothGatesClearKeepsWishlistEntry(t *testing.T) {
	h, svc := newHandler(t)
	ctx := context.Background()

	item := models.WishlistItem{
		ProductID:          "1",
		AddedAt:            time.Now().Add(-48 * time.Hour),
		CoolDownEnds:       time.Now().Add(-24 * time.Hour),
		ReflectionAnswered: true,
	}
	if _, err := svc.AddToWishlist(ctx, "u1", item); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}

	rr := postAddToCart(t, h, "1")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 with both gates clear, got %d: %s", rr.Code, rr.Body.String())
	}

	// the wishlist entry survives as a record of the reflection
	items, err := svc.GetWishlist(ctx, "u1")
	if err != nil {
		t.Fatalf("GetWishlist: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "1" {
		t.Fatalf("wishlist entry should remain after the add, got %+v", items)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	h, _ := newHandler(t)

	rr := postAddToCart(t, h, "does-not-exist")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
