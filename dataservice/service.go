package dataservice

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"needwise/models"
)

// Sentinel errors for the service boundary. Handlers match these with
// errors.Is and translate them to HTTP statuses.
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrRewardNotFound        = errors.New("reward not found")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrDuplicateWishlistItem = errors.New("product already in wishlist")
	ErrInvalidMaterial       = errors.New("unknown recycling material")
	ErrInvalidWeight         = errors.New("weight out of range")
)

// ProductService covers the catalog and the stored wishlist.
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (models.Product, error)
	GetProductAlternatives(ctx context.Context, id string) ([]models.ProductAlternative, error)

	GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID string, item models.WishlistItem) ([]models.WishlistItem, error)
	UpdateWishlist(ctx context.Context, userID string, items []models.WishlistItem) ([]models.WishlistItem, error)
}

// UserService covers the account record and its preferences.
type UserService interface {
	GetCurrentUser(ctx context.Context, userID string) (models.User, error)
	Login(ctx context.Context, email string) (models.User, error)
	AddEcoPoints(ctx context.Context, userID string, delta int) (int, error)
	UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (models.Preferences, error)
	GetSustainabilityGoals(ctx context.Context, userID string) (models.SustainabilityGoals, error)
	UpdateSustainabilityGoals(ctx context.Context, userID string, goals models.SustainabilityGoals) (models.SustainabilityGoals, error)
	TrackProductUsage(ctx context.Context, userID, productID string, usageCount int) ([]models.UsageTracking, error)
	GetImpactStats(ctx context.Context, userID string) (models.ImpactStats, error)
}

// EcoPointsService covers recycling intake, rewards and redemption.
// RecordRecycling returns record and new balance from one transaction;
// RedeemReward performs the balance check and debit atomically.
type EcoPointsService interface {
	GetRecyclingRates(ctx context.Context) (map[models.Material]int, error)
	GetAvailableRewards(ctx context.Context) ([]models.Reward, error)
	RecordRecycling(ctx context.Context, userID string, material models.Material, weight float64) (models.RecyclingRecord, int, error)
	GetRecyclingHistory(ctx context.Context, userID string) ([]models.RecyclingRecord, error)
	RedeemReward(ctx context.Context, userID, rewardID string) (models.Redemption, error)
	GetCommunityImpact(ctx context.Context) (models.CommunityImpact, error)
}

// Service is the full data-service collaborator consumed by the handlers.
type Service interface {
	ProductService
	UserService
	EcoPointsService
}

// FromEnv picks a backend from DATA_BACKEND: "mongo" connects to MongoDB
// (with optional Redis caching), anything else runs the latency-simulated
// in-memory stub.
func FromEnv(ctx context.Context) (Service, func(), error) {
	switch os.Getenv("DATA_BACKEND") {
	case "mongo":
		return NewMongo(ctx, os.Getenv("MONGODB_URI"), os.Getenv("REDIS_ADDR"))
	default:
		latency := 300 * time.Millisecond
		if ms := os.Getenv("STUB_LATENCY_MS"); ms != "" {
			if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
				latency = time.Duration(n) * time.Millisecond
			}
		}
		log.Printf("data service: in-memory stub, simulated latency %v", latency)
		return NewMemory(latency), func() {}, nil
	}
}
