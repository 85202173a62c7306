package dataservice

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"needwise/ledger"
	"needwise/models"
	"needwise/utils"

	"github.com/google/uuid"
)

// Memory is the latency-simulated stub backend seeded with the demo
// catalog. It holds everything behind one lock; calls first wait out the
// configured latency and honour context cancellation, so an abandoned
// request never mutates state afterwards.
type Memory struct {
	latency time.Duration

	mu        sync.RWMutex
	products  []models.Product
	rewards   []models.Reward
	rates     map[models.Material]int
	users     map[string]*models.User
	ledgers   map[string]*ledger.Ledger
	wishlists map[string][]models.WishlistItem
	recycling map[string][]models.RecyclingRecord
	usage     map[string][]models.UsageTracking
	community models.CommunityImpact
}

func NewMemory(latency time.Duration) *Memory {
	m := &Memory{
		latency:   latency,
		products:  seedProducts(),
		rewards:   seedRewards(),
		rates:     seedRates(),
		users:     make(map[string]*models.User),
		ledgers:   make(map[string]*ledger.Ledger),
		wishlists: make(map[string][]models.WishlistItem),
		recycling: make(map[string][]models.RecyclingRecord),
		usage:     make(map[string][]models.UsageTracking),
		community: seedCommunityImpact(),
	}
	for _, u := range seedUsers() {
		u := u
		m.users[u.UserID] = &u
		m.ledgers[u.UserID] = ledger.New(u.EcoPoints)
	}
	return m
}

// wait simulates network latency and is the stub's cancellation point.
func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- Products ---

func (m *Memory) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *Memory) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if category == "" {
		out := make([]models.Product, len(m.products))
		copy(out, m.products)
		return out, nil
	}
	var out []models.Product
	for _, p := range m.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	if err := m.wait(ctx); err != nil {
		return models.Product{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (m *Memory) GetProductAlternatives(ctx context.Context, id string) ([]models.ProductAlternative, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ProductID == id {
			out := make([]models.ProductAlternative, len(p.Alternatives))
			copy(out, p.Alternatives)
			return out, nil
		}
	}
	return nil, ErrProductNotFound
}

// --- Wishlist storage ---

func (m *Memory) GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyWishlist(m.wishlists[userID]), nil
}

func (m *Memory) AddToWishlist(ctx context.Context, userID string, item models.WishlistItem) ([]models.WishlistItem, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.wishlists[userID] {
		if existing.ProductID == item.ProductID {
			return copyWishlist(m.wishlists[userID]), ErrDuplicateWishlistItem
		}
	}
	item.UserID = userID
	m.wishlists[userID] = append(m.wishlists[userID], item)
	return copyWishlist(m.wishlists[userID]), nil
}

func (m *Memory) UpdateWishlist(ctx context.Context, userID string, items []models.WishlistItem) ([]models.WishlistItem, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	replacement := copyWishlist(items)
	for i := range replacement {
		replacement[i].UserID = userID
	}
	m.wishlists[userID] = replacement
	return copyWishlist(replacement), nil
}

func copyWishlist(items []models.WishlistItem) []models.WishlistItem {
	out := make([]models.WishlistItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ReflectionAnswers != nil {
			answers := make(map[string]string, len(out[i].ReflectionAnswers))
			for k, v := range out[i].ReflectionAnswers {
				answers[k] = v
			}
			out[i].ReflectionAnswers = answers
		}
	}
	return out
}

// --- Users ---

func (m *Memory) GetCurrentUser(ctx context.Context, userID string) (models.User, error) {
	if err := m.wait(ctx); err != nil {
		return models.User{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotUser(userID)
}

// Login resolves any non-empty email to the demo account. There are no
// credentials; authentication is out of scope.
func (m *Memory) Login(ctx context.Context, email string) (models.User, error) {
	if err := m.wait(ctx); err != nil {
		return models.User{}, err
	}
	if email == "" {
		return models.User{}, ErrUserNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotUser("u1")
}

// snapshotUser copies the record with the ledger's current balance filled
// in. Callers must hold at least the read lock.
func (m *Memory) snapshotUser(userID string) (models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	out := *u
	out.EcoPoints = m.ledgers[userID].Balance()
	return out, nil
}

func (m *Memory) AddEcoPoints(ctx context.Context, userID string, delta int) (int, error) {
	if err := m.wait(ctx); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[userID]
	if !ok {
		return 0, ErrUserNotFound
	}
	if delta >= 0 {
		return l.Credit(delta, "manual credit")
	}
	balance, err := l.Debit(-delta, "manual debit")
	if err != nil {
		return balance, ErrInsufficientBalance
	}
	return balance, nil
}

func (m *Memory) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error) {
	if err := m.wait(ctx); err != nil {
		return models.Preferences{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return models.Preferences{}, ErrUserNotFound
	}
	u.Preferences = prefs
	return u.Preferences, nil
}

func (m *Memory) GetSustainabilityGoals(ctx context.Context, userID string) (models.SustainabilityGoals, error) {
	if err := m.wait(ctx); err != nil {
		return models.SustainabilityGoals{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return models.SustainabilityGoals{}, ErrUserNotFound
	}
	return u.Preferences.SustainabilityGoals, nil
}

func (m *Memory) UpdateSustainabilityGoals(ctx context.Context, userID string, goals models.SustainabilityGoals) (models.SustainabilityGoals, error) {
	if err := m.wait(ctx); err != nil {
		return models.SustainabilityGoals{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return models.SustainabilityGoals{}, ErrUserNotFound
	}
	u.Preferences.SustainabilityGoals = goals
	return u.Preferences.SustainabilityGoals, nil
}

func (m *Memory) TrackProductUsage(ctx context.Context, userID, productID string, usageCount int) ([]models.UsageTracking, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	now := time.Now()
	tracked := m.usage[userID]
	found := false
	for i := range tracked {
		if tracked[i].ProductID == productID {
			tracked[i].UsageCount = usageCount
			tracked[i].LastUpdated = now
			found = true
			break
		}
	}
	if !found {
		tracked = append(tracked, models.UsageTracking{
			UserID:      userID,
			ProductID:   productID,
			UsageCount:  usageCount,
			StartDate:   now,
			LastUpdated: now,
		})
	}
	m.usage[userID] = tracked
	out := make([]models.UsageTracking, len(tracked))
	copy(out, tracked)
	return out, nil
}

func (m *Memory) GetImpactStats(ctx context.Context, userID string) (models.ImpactStats, error) {
	if err := m.wait(ctx); err != nil {
		return models.ImpactStats{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return models.ImpactStats{}, ErrUserNotFound
	}
	return u.ImpactStats, nil
}

// --- Eco-points ---

func (m *Memory) GetRecyclingRates(ctx context.Context) (map[models.Material]int, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[models.Material]int, len(m.rates))
	for k, v := range m.rates {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) GetAvailableRewards(ctx context.Context) ([]models.Reward, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Reward, len(m.rewards))
	copy(out, m.rewards)
	return out, nil
}

// RecordRecycling appends the record and credits the points under one
// lock, so a record without its credit (or the reverse) cannot happen.
func (m *Memory) RecordRecycling(ctx context.Context, userID string, material models.Material, weight float64) (models.RecyclingRecord, int, error) {
	if err := m.wait(ctx); err != nil {
		return models.RecyclingRecord{}, 0, err
	}
	if !models.ValidMaterial(material) {
		return models.RecyclingRecord{}, 0, ErrInvalidMaterial
	}
	if weight < 0.1 || weight > 10 {
		return models.RecyclingRecord{}, 0, ErrInvalidWeight
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[userID]
	if !ok {
		return models.RecyclingRecord{}, 0, ErrUserNotFound
	}
	points := int(math.Round(float64(m.rates[material]) * weight))
	record := models.RecyclingRecord{
		RecordID:  uuid.NewString(),
		UserID:    userID,
		Material:  material,
		Weight:    weight,
		Points:    points,
		Timestamp: time.Now(),
	}
	newBalance, err := l.Credit(points, "recycling: "+string(material))
	if err != nil {
		return models.RecyclingRecord{}, 0, err
	}
	m.recycling[userID] = append(m.recycling[userID], record)
	return record, newBalance, nil
}

func (m *Memory) GetRecyclingHistory(ctx context.Context, userID string) ([]models.RecyclingRecord, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := m.recycling[userID]
	out := make([]models.RecyclingRecord, len(history))
	copy(out, history)
	return out, nil
}

// RedeemReward looks up the reward, then lets the ledger decide: the
// balance check and the debit are one atomic step inside Debit. No
// caller-side pre-check is trusted here.
func (m *Memory) RedeemReward(ctx context.Context, userID, rewardID string) (models.Redemption, error) {
	if err := m.wait(ctx); err != nil {
		return models.Redemption{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[userID]
	if !ok {
		return models.Redemption{}, ErrUserNotFound
	}
	var reward models.Reward
	found := false
	for _, r := range m.rewards {
		if r.RewardID == rewardID {
			reward = r
			found = true
			break
		}
	}
	if !found {
		return models.Redemption{}, ErrRewardNotFound
	}
	newBalance, err := l.Debit(reward.PointsCost, "redeem: "+reward.Name)
	if err != nil {
		return models.Redemption{}, ErrInsufficientBalance
	}
	return models.Redemption{
		Reward:     reward,
		RedeemCode: "ECO-" + utils.GenerateUpperCode(8),
		NewBalance: newBalance,
		RedeemedAt: time.Now(),
	}, nil
}

func (m *Memory) GetCommunityImpact(ctx context.Context) (models.CommunityImpact, error) {
	if err := m.wait(ctx); err != nil {
		return models.CommunityImpact{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.community
	out.TotalRecycled = make(map[models.Material]float64, len(m.community.TotalRecycled))
	for k, v := range m.community.TotalRecycled {
		out.TotalRecycled[k] = v
	}
	out.TopCommunities = append([]models.CommunityScore(nil), m.community.TopCommunities...)
	return out, nil
}
