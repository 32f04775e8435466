package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AhsanHabibHamim/RecipeBookBackend/docs" // swagger docs

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/cache"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/config"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/db"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/feed"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/handler"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/repository"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/service"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Recipe Book API
// @version 1.0
// @description Token-gated CRUD API for sharing recipes (Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mongo is required; Redis is best-effort (nil cache = uncached).
	mongo, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("[mongo] connect: %v", err)
	}
	redisCache := cache.Connect(cfg)

	// repos
	recipeRepo := repository.NewRecipeRepository(mongo)
	userRepo := repository.NewUserRepository(mongo)
	if err := recipeRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("[mongo] recipe indexes: %v\n", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("[mongo] user indexes: %v\n", err)
	}

	// live event feed
	hub := feed.New()
	go hub.Run(ctx)

	// services
	recipeSvc := service.NewRecipeService(recipeRepo, redisCache, hub)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)

	// handlers + router
	r := handler.NewRouter(cfg,
		handler.NewHealthHandler(mongo),
		handler.NewAuthHandler(authSvc),
		handler.NewRecipeHandler(recipeSvc),
		hub,
		authSvc,
	)

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}
	go func() {
		log.Printf("[http] listening on :%s\n", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[http] server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[http] shutting down")

	// Drain in-flight requests, then release the store connections.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v\n", err)
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		log.Printf("[mongo] disconnect: %v\n", err)
	}
	if err := redisCache.Close(); err != nil {
		log.Printf("[redis] close: %v\n", err)
	}
}
