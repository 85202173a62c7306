package dataservice

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"needwise/models"
)

func newWishlistItem(productID string, cooldownHours int) models.WishlistItem {
	now := time.Now()
	return models.WishlistItem{
		ProductID:    productID,
		AddedAt:      now,
		CoolDownEnds: now.Add(time.Duration(cooldownHours) * time.Hour),
	}
}

func newTestService() *Memory {
	return NewMemory(0) // no simulated latency in tests
}

func TestSeedCatalog(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	products, err := m.GetAllProducts(ctx)
	if err != nil {
		t.Fatalf("GetAllProducts: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("catalog should be seeded")
	}

	p, err := m.GetProductByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if p.ProductID != "1" {
		t.Fatalf("wrong product: %+v", p)
	}

	if _, err := m.GetProductByID(ctx, "does-not-exist"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSearchProducts(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	hits, err := m.SearchProducts(ctx, "bottle")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one match for 'bottle'")
	}
	for _, p := range hits {
		t.Logf("hit: %s (%s)", p.Name, p.Category)
	}
}

func TestRecordRecyclingCreditsPoints(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	user, err := m.GetCurrentUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	opening := user.EcoPoints

	record, newBalance, err := m.RecordRecycling(ctx, "u1", models.MaterialPlastic, 2.0)
	if err != nil {
		t.Fatalf("RecordRecycling: %v", err)
	}
	if record.Points != 20 {
		t.Fatalf("2.0 kg plastic at 10/kg should earn 20 points, got %d", record.Points)
	}
	if newBalance != opening+20 {
		t.Fatalf("expected balance %d, got %d", opening+20, newBalance)
	}

	// record and balance move together
	history, err := m.GetRecyclingHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("GetRecyclingHistory: %v", err)
	}
	if len(history) != 1 || history[0].RecordID != record.RecordID {
		t.Fatalf("history should hold the new record, got %+v", history)
	}
	user, _ = m.GetCurrentUser(ctx, "u1")
	if user.EcoPoints != newBalance {
		t.Fatalf("user snapshot balance %d disagrees with credit result %d", user.EcoPoints, newBalance)
	}
}

func TestRecordRecyclingValidation(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	if _, _, err := m.RecordRecycling(ctx, "u1", "cardboard", 1.0); !errors.Is(err, ErrInvalidMaterial) {
		t.Fatalf("expected ErrInvalidMaterial, got %v", err)
	}
	if _, _, err := m.RecordRecycling(ctx, "u1", models.MaterialGlass, 0.05); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight for 0.05 kg, got %v", err)
	}
	if _, _, err := m.RecordRecycling(ctx, "u1", models.MaterialGlass, 12); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight for 12 kg, got %v", err)
	}

	// a rejected submission leaves no trace
	history, _ := m.GetRecyclingHistory(ctx, "u1")
	if len(history) != 0 {
		t.Fatalf("rejected submissions must not be recorded, got %d", len(history))
	}
}

var redeemCodePattern = regexp.MustCompile(`^ECO-[A-Z0-9]{8}$`)

func TestRedeemReward(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	// demo user starts at 250; r3 costs 200
	redemption, err := m.RedeemReward(ctx, "u1", "r3")
	if err != nil {
		t.Fatalf("RedeemReward: %v", err)
	}
	if redemption.NewBalance != 50 {
		t.Fatalf("expected balance 50 after redeeming, got %d", redemption.NewBalance)
	}
	if !redeemCodePattern.MatchString(redemption.RedeemCode) {
		t.Fatalf("bad redeem code %q", redemption.RedeemCode)
	}

	// second attempt: 50 points cannot cover 200
	if _, err := m.RedeemReward(ctx, "u1", "r3"); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	user, _ := m.GetCurrentUser(ctx, "u1")
	if user.EcoPoints != 50 {
		t.Fatalf("failed redemption must not touch the balance, got %d", user.EcoPoints)
	}

	if _, err := m.RedeemReward(ctx, "u1", "r99"); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected ErrRewardNotFound, got %v", err)
	}
}

func TestAddToWishlistDetectsDuplicates(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	item := newWishlistItem("1", 24)

	items, err := m.AddToWishlist(ctx, "u1", item)
	if err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one entry, got %d", len(items))
	}

	items, err = m.AddToWishlist(ctx, "u1", item)
	if !errors.Is(err, ErrDuplicateWishlistItem) {
		t.Fatalf("expected ErrDuplicateWishlistItem, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("duplicate add must leave the wishlist unchanged, got %d entries", len(items))
	}
}

func TestWishlistCopiesAreIndependent(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	item := newWishlistItem("1", 24)
	item.ReflectionAnswers = map[string]string{"q1": "Daily"}
	m.AddToWishlist(ctx, "u1", item)

	got, _ := m.GetWishlist(ctx, "u1")
	got[0].ReflectionAnswers["q1"] = "mutated"

	fresh, _ := m.GetWishlist(ctx, "u1")
	if fresh[0].ReflectionAnswers["q1"] != "Daily" {
		t.Fatal("returned wishlist shares state with the store")
	}
}

func TestLatencyStubHonoursCancellation(t *testing.T) {
	m := NewMemory(500 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.GetAllProducts(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatal("call did not return promptly on cancellation")
	}
}

func TestAddEcoPointsGuardsDebits(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	balance, err := m.AddEcoPoints(ctx, "u1", -100)
	if err != nil {
		t.Fatalf("AddEcoPoints: %v", err)
	}
	if balance != 150 {
		t.Fatalf("expected 150 after spending 100, got %d", balance)
	}

	if _, err := m.AddEcoPoints(ctx, "u1", -1000); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestGetCommunityImpact(t *testing.T) {
	m := newTestService()
	ctx := context.Background()

	impact, err := m.GetCommunityImpact(ctx)
	if err != nil {
		t.Fatalf("GetCommunityImpact: %v", err)
	}
	if impact.TreesEquivalent == 0 || len(impact.TopCommunities) == 0 {
		t.Fatalf("community impact not seeded: %+v", impact)
	}
}
