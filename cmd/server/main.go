package main // Entry point package

import (
	"context" // Context for startup operations
	"log"     // Logging library
	"time"    // Timeouts for startup operations

	"github.com/joho/godotenv"    // .env loader
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/buycarr/marketplace-api/internal/config"     // Internal config loader
	"github.com/buycarr/marketplace-api/internal/database"   // MySQL pool + schema
	"github.com/buycarr/marketplace-api/internal/handler"    // HTTP handlers
	"github.com/buycarr/marketplace-api/internal/middleware" // Cache + rate limit middlewares
	"github.com/buycarr/marketplace-api/internal/queue"      // Sale event consumer
	"github.com/buycarr/marketplace-api/internal/repository" // Data access layer
	"github.com/buycarr/marketplace-api/internal/router"     // Route registration
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Repositories share the single pool.
	users := repository.NewUserRepo(db)
	cars := repository.NewCarRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	reservations := repository.NewReservationRepo(db)
	comments := repository.NewCommentRepo(db)

	// Seed the default admin account so a fresh install is usable at once.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := users.EnsureDefaultAdmin(seedCtx, cfg.BcryptCost)
	seedCancel()
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		log.Printf("default admin account created (%s)", repository.DefaultAdminEmail)
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(rlCfg, rdb)) // global rate limit

	// Handlers bundle their repositories.
	auth := handler.NewAuthHandler(cfg, users)
	profile := handler.NewProfileHandler(users)
	carH := handler.NewCarHandler(cars)
	favH := handler.NewFavoriteHandler(favorites, cars)
	resH := handler.NewReservationHandler(reservations, cars, users)
	comH := handler.NewCommentHandler(comments, cars, users)
	contact := handler.NewContactHandler(users)
	setup := handler.NewSetupHandler(cfg, users)

	cache := middleware.ResponseCache(cacheCfg, rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, carH, comH, contact, setup, cache)
	router.RegisterUser(e, profile, favH, resH, comH, cfg.JWTSecret)
	router.RegisterAdmin(e, carH, resH, cfg.JWTSecret)

	// Background consumer runs a reconnect loop for its whole lifetime.
	go func() {
		if err := queue.StartSaleConsumer(); err != nil {
			log.Printf("sale consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
