package dataservice

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"needwise/models"
	"needwise/rdx"
	"needwise/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the durable backend for a production rebuild. Rewards, rates
// and the reflection questionnaire stay static catalog data; users,
// wishlists, recycling history and usage tracking live in collections.
// A Redis cache fronts the hot reads and is invalidated on writes.
type Mongo struct {
	client    *mongo.Client
	cache     *rdx.Cache
	users     *mongo.Collection
	products  *mongo.Collection
	wishlists *mongo.Collection
	recycling *mongo.Collection
	usage     *mongo.Collection

	rewards   []models.Reward
	rates     map[models.Material]int
	community models.CommunityImpact
}

func NewMongo(ctx context.Context, uri, redisAddr string) (Service, func(), error) {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	var cache *rdx.Cache
	if redisAddr != "" {
		cache, err = rdx.New(ctx, redisAddr)
		if err != nil {
			log.Printf("redis unavailable (%v); continuing without cache", err)
			cache = nil
		}
	}

	database := client.Database("needwise")
	m := &Mongo{
		client:    client,
		cache:     cache,
		users:     database.Collection("users"),
		products:  database.Collection("products"),
		wishlists: database.Collection("wishlists"),
		recycling: database.Collection("recycling"),
		usage:     database.Collection("usage"),
		rewards:   seedRewards(),
		rates:     seedRates(),
		community: seedCommunityImpact(),
	}
	if err := m.ensureSeed(ctx); err != nil {
		return nil, nil, err
	}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cache.Close()
		_ = client.Disconnect(shutdownCtx)
	}
	return m, cleanup, nil
}

// ensureSeed initializes the catalog and demo user when the collections
// are empty, mirroring the in-memory stub's starting state.
func (m *Mongo) ensureSeed(ctx context.Context) error {
	n, err := m.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		docs := make([]interface{}, 0, len(seedProducts()))
		for _, p := range seedProducts() {
			docs = append(docs, p)
		}
		if _, err := m.products.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	n, err = m.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		docs := make([]interface{}, 0, len(seedUsers()))
		for _, u := range seedUsers() {
			docs = append(docs, u)
		}
		if _, err := m.users.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.wishlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_user_product"),
	})
	if err != nil {
		return err
	}
	_, err = m.recycling.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}

// --- Products ---

func (m *Mongo) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if m.cache.GetJSON(ctx, "products:all", &cached) {
		return cached, nil
	}
	cur, err := m.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	m.cache.SetJSON(ctx, "products:all", out, 10*time.Minute)
	return out, nil
}

func (m *Mongo) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	all, err := m.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Mongo) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return m.GetAllProducts(ctx)
	}
	cur, err := m.products.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Mongo) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := m.products.FindOne(ctx, bson.M{"productId": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (m *Mongo) GetProductAlternatives(ctx context.Context, id string) ([]models.ProductAlternative, error) {
	p, err := m.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Alternatives, nil
}

// --- Wishlist storage ---

func (m *Mongo) GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	cacheKey := "wishlist:" + userID
	var cached []models.WishlistItem
	if m.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}
	cur, err := m.wishlists.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.WishlistItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	m.cache.SetJSON(ctx, cacheKey, out, 10*time.Minute)
	return out, nil
}

func (m *Mongo) AddToWishlist(ctx context.Context, userID string, item models.WishlistItem) ([]models.WishlistItem, error) {
	item.UserID = userID
	res, err := m.wishlists.UpdateOne(ctx,
		bson.M{"userId": userID, "productId": item.ProductID},
		bson.M{"$setOnInsert": item},
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	m.cache.Del(ctx, "wishlist:"+userID)
	list, lerr := m.GetWishlist(ctx, userID)
	if lerr != nil {
		return nil, lerr
	}
	if res.UpsertedCount == 0 {
		return list, ErrDuplicateWishlistItem
	}
	return list, nil
}

func (m *Mongo) UpdateWishlist(ctx context.Context, userID string, items []models.WishlistItem) ([]models.WishlistItem, error) {
	if _, err := m.wishlists.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		docs := make([]interface{}, 0, len(items))
		for _, it := range items {
			it.UserID = userID
			docs = append(docs, it)
		}
		if _, err := m.wishlists.InsertMany(ctx, docs); err != nil {
			return nil, err
		}
	}
	m.cache.Del(ctx, "wishlist:"+userID)
	return m.GetWishlist(ctx, userID)
}

// --- Users ---

func (m *Mongo) GetCurrentUser(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	err := m.users.FindOne(ctx, bson.M{"userId": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (m *Mongo) Login(ctx context.Context, email string) (models.User, error) {
	if email == "" {
		return models.User{}, ErrUserNotFound
	}
	var u models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Demo behavior: unknown emails resolve to the seeded account.
		return m.GetCurrentUser(ctx, "u1")
	}
	return u, err
}

// AddEcoPoints adjusts the balance with a guarded $inc; for debits the
// filter requires a covering balance, so the update and the check are one
// atomic operation on the server.
func (m *Mongo) AddEcoPoints(ctx context.Context, userID string, delta int) (int, error) {
	filter := bson.M{"userId": userID}
	if delta < 0 {
		filter["ecoPoints"] = bson.M{"$gte": -delta}
	}
	var u models.User
	err := m.users.FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{"ecoPoints": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, uerr := m.GetCurrentUser(ctx, userID); uerr != nil {
			return 0, uerr
		}
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, err
	}
	return u.EcoPoints, nil
}

func (m *Mongo) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error) {
	res, err := m.users.UpdateOne(ctx, bson.M{"userId": userID},
		bson.M{"$set": bson.M{"preferences": prefs}})
	if err != nil {
		return models.Preferences{}, err
	}
	if res.MatchedCount == 0 {
		return models.Preferences{}, ErrUserNotFound
	}
	return prefs, nil
}

func (m *Mongo) GetSustainabilityGoals(ctx context.Context, userID string) (models.SustainabilityGoals, error) {
	u, err := m.GetCurrentUser(ctx, userID)
	if err != nil {
		return models.SustainabilityGoals{}, err
	}
	return u.Preferences.SustainabilityGoals, nil
}

func (m *Mongo) UpdateSustainabilityGoals(ctx context.Context, userID string, goals models.SustainabilityGoals) (models.SustainabilityGoals, error) {
	res, err := m.users.UpdateOne(ctx, bson.M{"userId": userID},
		bson.M{"$set": bson.M{"preferences.sustainabilityGoals": goals}})
	if err != nil {
		return models.SustainabilityGoals{}, err
	}
	if res.MatchedCount == 0 {
		return models.SustainabilityGoals{}, ErrUserNotFound
	}
	return goals, nil
}

func (m *Mongo) TrackProductUsage(ctx context.Context, userID, productID string, usageCount int) ([]models.UsageTracking, error) {
	now := time.Now()
	_, err := m.usage.UpdateOne(ctx,
		bson.M{"userId": userID, "productId": productID},
		bson.M{
			"$set":         bson.M{"usageCount": usageCount, "lastUpdated": now},
			"$setOnInsert": bson.M{"startDate": now},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	cur, err := m.usage.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.UsageTracking
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Mongo) GetImpactStats(ctx context.Context, userID string) (models.ImpactStats, error) {
	u, err := m.GetCurrentUser(ctx, userID)
	if err != nil {
		return models.ImpactStats{}, err
	}
	return u.ImpactStats, nil
}

// --- Eco-points ---

func (m *Mongo) GetRecyclingRates(ctx context.Context) (map[models.Material]int, error) {
	out := make(map[models.Material]int, len(m.rates))
	for k, v := range m.rates {
		out[k] = v
	}
	return out, nil
}

func (m *Mongo) GetAvailableRewards(ctx context.Context) ([]models.Reward, error) {
	return append([]models.Reward(nil), m.rewards...), nil
}

// RecordRecycling credits first with a guarded update, then inserts the
// record; a failed insert rolls the credit back so record and balance
// cannot drift apart.
func (m *Mongo) RecordRecycling(ctx context.Context, userID string, material models.Material, weight float64) (models.RecyclingRecord, int, error) {
	if !models.ValidMaterial(material) {
		return models.RecyclingRecord{}, 0, ErrInvalidMaterial
	}
	if weight < 0.1 || weight > 10 {
		return models.RecyclingRecord{}, 0, ErrInvalidWeight
	}
	points := int(math.Round(float64(m.rates[material]) * weight))
	newBalance, err := m.AddEcoPoints(ctx, userID, points)
	if err != nil {
		return models.RecyclingRecord{}, 0, err
	}
	record := models.RecyclingRecord{
		RecordID:  uuid.NewString(),
		UserID:    userID,
		Material:  material,
		Weight:    weight,
		Points:    points,
		Timestamp: time.Now(),
	}
	if _, err := m.recycling.InsertOne(ctx, record); err != nil {
		if _, rbErr := m.AddEcoPoints(ctx, userID, -points); rbErr != nil {
			log.Printf("recycling rollback failed for %s: %v", userID, rbErr)
		}
		return models.RecyclingRecord{}, 0, err
	}
	return record, newBalance, nil
}

func (m *Mongo) GetRecyclingHistory(ctx context.Context, userID string) ([]models.RecyclingRecord, error) {
	cur, err := m.recycling.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.RecyclingRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RedeemReward debits through the same guarded $inc used everywhere else;
// an uncovered balance never matches the filter, so the debit cannot
// overdraw even under concurrent redemptions.
func (m *Mongo) RedeemReward(ctx context.Context, userID, rewardID string) (models.Redemption, error) {
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
	newBalance, err := m.AddEcoPoints(ctx, userID, -reward.PointsCost)
	if err != nil {
		return models.Redemption{}, err
	}
	return models.Redemption{
		Reward:     reward,
		RedeemCode: "ECO-" + utils.GenerateUpperCode(8),
		NewBalance: newBalance,
		RedeemedAt: time.Now(),
	}, nil
}

func (m *Mongo) GetCommunityImpact(ctx context.Context) (models.CommunityImpact, error) {
	var cached models.CommunityImpact
	if m.cache.GetJSON(ctx, "impact:community", &cached) {
		return cached, nil
	}
	// Static aggregates plus whatever the smart bins have actually seen.
	out := m.community
	out.TotalRecycled = make(map[models.Material]float64, len(m.community.TotalRecycled))
	for k, v := range m.community.TotalRecycled {
		out.TotalRecycled[k] = v
	}
	out.TopCommunities = append([]models.CommunityScore(nil), m.community.TopCommunities...)

	cur, err := m.recycling.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$material", "total": bson.M{"$sum": "$weight"}}}},
	})
	if err == nil {
		defer cur.Close(ctx)
		var rows []struct {
			Material models.Material `bson:"_id"`
			Total    float64         `bson:"total"`
		}
		if err := cur.All(ctx, &rows); err == nil {
			for _, row := range rows {
				out.TotalRecycled[row.Material] += row.Total
			}
		}
	}
	m.cache.SetJSON(ctx, "impact:community", out, 5*time.Minute)
	return out, nil
}
