package routes

import (
	"needwise/cart"
	"needwise/impact"
	"needwise/middleware"
	"needwise/notify"
	"needwise/products"
	"needwise/ratelim"
	"needwise/recycle"
	"needwise/rewards"
	"needwise/users"
	"needwise/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddProductRoutes(router *httprouter.Router, h *products.Handler) {
	router.GET("/api/products", h.GetProducts)
	router.GET("/api/products/:productid", h.GetProduct)
	router.GET("/api/products/:productid/alternatives", h.GetAlternatives)
}

func AddWishlistRoutes(router *httprouter.Router, h *wishlist.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/wishlist", middleware.WithUser(h.GetWishlist))
	router.POST("/api/wishlist", rl.RateLimit(middleware.WithUser(h.AddToWishlist)))
	router.PUT("/api/wishlist", rl.RateLimit(middleware.WithUser(h.ReplaceWishlist)))
	router.DELETE("/api/wishlist/item/:productid", rl.RateLimit(middleware.WithUser(h.RemoveFromWishlist)))
	router.GET("/api/wishlist/questions", h.GetQuestions)
	router.POST("/api/wishlist/item/:productid/reflection", rl.RateLimit(middleware.WithUser(h.AnswerReflection)))
	router.PUT("/api/wishlist/item/:productid/cooldown", rl.RateLimit(middleware.WithUser(h.UpdateCooldown)))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.WithUser(h.GetCart))
	router.POST("/api/cart", rl.RateLimit(middleware.WithUser(h.AddToCart)))
	router.PUT("/api/cart/:productid", rl.RateLimit(middleware.WithUser(h.UpdateQuantity)))
	router.DELETE("/api/cart/:productid", rl.RateLimit(middleware.WithUser(h.RemoveFromCart)))
}

func AddRecyclingRoutes(router *httprouter.Router, h *recycle.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/recycling/rates", h.GetRates)
	router.POST("/api/recycling", rl.RateLimit(middleware.WithUser(h.RecordRecycling)))
	router.GET("/api/recycling/history", middleware.WithUser(h.GetHistory))
}

func AddRewardRoutes(router *httprouter.Router, h *rewards.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/rewards", h.GetRewards)
	router.POST("/api/rewards/:rewardid/redeem", rl.RateLimit(middleware.WithUser(h.Redeem)))
	router.GET("/api/rewards/voucher/:code", middleware.WithUser(h.PrintVoucher))
}

func AddImpactRoutes(router *httprouter.Router, h *impact.Handler) {
	router.GET("/api/impact/community", h.GetCommunityImpact)
	router.GET("/api/impact/me", middleware.WithUser(h.GetMyImpact))
}

func AddUserRoutes(router *httprouter.Router, h *users.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/user", middleware.WithUser(h.GetCurrentUser))
	router.POST("/api/user/login", rl.RateLimit(h.Login))
	router.PUT("/api/user/preferences", rl.RateLimit(middleware.WithUser(h.UpdatePreferences)))
	router.GET("/api/user/goals", middleware.WithUser(h.GetGoals))
	router.PUT("/api/user/goals", rl.RateLimit(middleware.WithUser(h.UpdateGoals)))
	router.POST("/api/user/usage", rl.RateLimit(middleware.WithUser(h.TrackUsage)))
	router.POST("/api/user/points", rl.RateLimit(middleware.WithUser(h.AddEcoPoints)))
}

func AddNotificationRoutes(router *httprouter.Router, h *notify.Handler) {
	router.GET("/api/notifications", middleware.WithUser(h.GetNotifications))
	router.DELETE("/api/notifications/:id", middleware.WithUser(h.DismissNotification))
	router.GET("/api/notifications/ws", middleware.WithUser(h.Subscribe))
}
