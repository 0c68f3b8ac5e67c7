package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/assistant"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/cart"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/config"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/events"
	h "github.com/ulhasvenkateshm13-dotcom/buildit/internal/http"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/order"
)

func main() {
	cfg := config.Load()

	// Catalog
	store, err := buildCatalogStore(cfg)
	if err != nil {
		log.Fatalf("failed to set up catalog: %v", err)
	}
	defer store.Close()

	// Cart, with an optional redis-backed view cache
	cartStore := cart.NewStore()
	var viewCache cart.ViewCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		viewCache = cart.NewRedisCache(client)
		log.Printf("cart view cache enabled at %s", cfg.RedisAddr)
	}
	carts := cart.NewService(cartStore, viewCache)

	// Order events
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		log.Printf("order events publishing to %v topic %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	// Order engine
	engine := order.NewEngine(carts, publisher, order.WithTickInterval(cfg.OrderTickInterval))
	defer engine.Close()

	// Assistant; stays disabled without a credential
	var aiClient assistant.Client
	if cfg.GeminiAPIKey != "" {
		aiClient = assistant.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	} else {
		log.Println("GEMINI_API_KEY not set, assistant disabled")
	}
	assistantSvc := assistant.NewService(aiClient, store)
	resolver := assistant.NewResolver(store, carts)

	// Handlers
	productHandler := h.NewProductHandler(store, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(carts, store, cfg.RequestTimeout)
	orderHandler := h.NewOrderHandler(engine)
	assistantHandler := h.NewAssistantHandler(assistantSvc, resolver, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
			r.Post("/{product_id}/reviews", productHandler.AddReview)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})
		r.Post("/checkout", orderHandler.Checkout)
		r.Get("/orders/active", orderHandler.Active)
		r.Route("/assistant", func(r chi.Router) {
			r.Get("/messages", assistantHandler.Messages)
			r.Post("/messages", assistantHandler.Send)
			r.Post("/bundle", assistantHandler.ApplyBundle)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "buildit-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func buildCatalogStore(cfg *config.Config) (catalog.Store, error) {
	if cfg.CatalogBackend != "sqlite" {
		return catalog.NewMemoryStore(catalog.SeedProducts()), nil
	}

	store, err := catalog.NewSQLiteStore(cfg.CatalogDBPath)
	if err != nil {
		return nil, err
	}
	if err := store.RunMigrations(cfg.MigrationsPath); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.Seed(context.Background(), catalog.SeedProducts()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
