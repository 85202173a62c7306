package rewards

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"needwise/dataservice"
	"needwise/globals"
	"needwise/notify"

	"github.com/julienschmidt/httprouter"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	bus := notify.NewBus(nil)
	t.Cleanup(bus.Stop)
	return NewHandler(dataservice.NewMemory(0), bus)
}

func postRedeem(t *testing.T, h *Handler, rewardID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/rewards/"+rewardID+"/redeem", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, "u1"))
	rr := httptest.NewRecorder()
	h.Redeem(rr, req, httprouter.Params{{Key: "rewardid", Value: rewardID}})
	return rr
}

func TestRedeemHappyPath(t *testing.T) {
	h := newTestHandler(t)

	// demo user has 250 points; r3 costs 200
	rr := postRedeem(t, h, "r3")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success    bool   `json:"success"`
		RedeemCode string `json:"redeemCode"`
		NewBalance int    `json:"newBalance"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.NewBalance != 50 {
		t.Fatalf("unexpected redemption: %+v", resp)
	}
	if !regexp.MustCompile(`^ECO-[A-Z0-9]{8}$`).MatchString(resp.RedeemCode) {
		t.Fatalf("bad redeem code %q", resp.RedeemCode)
	}

	// the redemption is kept so the voucher can be printed
	if _, ok := h.lookup(resp.RedeemCode); !ok {
		t.Fatal("redemption not retained for voucher lookup")
	}
}

func TestRedeemInsufficientBalance(t *testing.T) {
	h := newTestHandler(t)

	// r5 costs 500, demo user has 250
	rr := postRedeem(t, h, "r5")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	h := newTestHandler(t)

	rr := postRedeem(t, h, "r99")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetRewards(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rewards", nil)
	rr := httptest.NewRecorder()
	h.GetRewards(rr, req, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Rewards []struct {
			RewardID   string `json:"rewardId"`
			PointsCost int    `json:"pointsCost"`
		} `json:"rewards"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Rewards) != 6 {
		t.Fatalf("expected 6 rewards, got %d", len(resp.Rewards))
	}
}
