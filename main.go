package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"needwise/cart"
	"needwise/dataservice"
	"needwise/impact"
	"needwise/notify"
	"needwise/products"
	"needwise/ratelim"
	"needwise/recycle"
	"needwise/rewards"
	"needwise/routes"
	"needwise/users"
	"needwise/wishlist"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// setupRouter builds the router with every route wired to its handler.
func setupRouter(svc dataservice.Service, bus *notify.Bus, hub *notify.Hub, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddProductRoutes(router, &products.Handler{Svc: svc})
	routes.AddWishlistRoutes(router, &wishlist.Handler{Svc: svc, Bus: bus}, rateLimiter)
	routes.AddCartRoutes(router, &cart.Handler{Store: cart.NewStore(), Svc: svc, Bus: bus}, rateLimiter)
	routes.AddRecyclingRoutes(router, &recycle.Handler{Svc: svc, Bus: bus}, rateLimiter)
	routes.AddRewardRoutes(router, rewards.NewHandler(svc, bus), rateLimiter)
	routes.AddImpactRoutes(router, &impact.Handler{Svc: svc})
	routes.AddUserRoutes(router, &users.Handler{Svc: svc, Bus: bus}, rateLimiter)
	routes.AddNotificationRoutes(router, &notify.Handler{Bus: bus, Hub: hub})

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	// data service: in-memory stub by default, mongo when configured
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	svc, cleanup, err := dataservice.FromEnv(startupCtx)
	cancelStartup()
	if err != nil {
		log.Fatalf("data service init: %v", err)
	}
	defer cleanup()

	// notification hub and bus
	hub := notify.NewHub()
	go hub.Run()
	bus := notify.NewBus(hub)

	rateLimiter := ratelim.NewRateLimiter()

	router := setupRouter(svc, bus, hub, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-User-ID"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: stop notification timers and push hub
	server.RegisterOnShutdown(func() {
		bus.Stop()
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
