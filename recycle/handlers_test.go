package recycle

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"needwise/dataservice"
	"needwise/globals"
	"needwise/notify"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	bus := notify.NewBus(nil)
	t.Cleanup(bus.Stop)
	return &Handler{Svc: dataservice.NewMemory(0), Bus: bus}
}

func postRecycling(t *testing.T, h *Handler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/recycling", bytes.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, "u1"))
	rr := httptest.NewRecorder()
	h.RecordRecycling(rr, req, nil)
	return rr
}

func TestRecordRecycling(t *testing.T) {
	h := newHandler(t)

	rr := postRecycling(t, h, map[string]interface{}{"material": "plastic", "weight": 2.0})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Record struct {
			Points int `json:"points"`
		} `json:"record"`
		NewBalance int `json:"newBalance"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Record.Points != 20 {
		t.Fatalf("expected 20 points, got %d", resp.Record.Points)
	}
	if resp.NewBalance != 270 {
		t.Fatalf("expected balance 270, got %d", resp.NewBalance)
	}
}

func TestRecordRecyclingRejectsBadInput(t *testing.T) {
	h := newHandler(t)

	rr := postRecycling(t, h, map[string]interface{}{"material": "cardboard", "weight": 2.0})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown material: expected 400, got %d", rr.Code)
	}

	rr = postRecycling(t, h, map[string]interface{}{"material": "glass", "weight": 11.0})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("overweight: expected 400, got %d", rr.Code)
	}
}

func TestGetRates(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/recycling/rates", nil)
	rr := httptest.NewRecorder()
	h.GetRates(rr, req, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Rates map[string]int `json:"rates"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Rates["plastic"] != 10 || resp.Rates["electronics"] != 25 {
		t.Fatalf("unexpected rates: %+v", resp.Rates)
	}
}
