package main // Entry point package

import (
	"context" // lifetime of background workers
	"log"     // Logging library
	"time"    // poll interval conversion

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/halicz/shopfloor/internal/config"     // Internal config loader
	"github.com/halicz/shopfloor/internal/database"   // MySQL connection pool
	"github.com/halicz/shopfloor/internal/handler"    // HTTP handlers
	"github.com/halicz/shopfloor/internal/middleware" // response cache + rate limiting
	"github.com/halicz/shopfloor/internal/queue"      // broker consumers
	"github.com/halicz/shopfloor/internal/repository" // DB repositories
	"github.com/halicz/shopfloor/internal/router"     // route registration
	"github.com/halicz/shopfloor/internal/service"    // label config cache
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	products := repository.NewProductRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	counters := repository.NewCounterRepo(db)
	records := repository.NewProductionRepo(db)
	reprints := repository.NewReprintRepo(db)
	labelConfigs := repository.NewLabelConfigRepo(db)

	// Shared label configuration cache: refreshed on a timer and on
	// broker invalidation messages.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pollInterval := time.Duration(cfg.ConfigPollSec) * time.Second
	configCache := service.NewConfigCache(labelConfigs, pollInterval)
	configCache.StartPolling(ctx, pollInterval)

	// Broker consumers run for the life of the process and reconnect on
	// their own; a broker outage only costs the audit trail and cache
	// invalidations, never the HTTP API.
	go func() {
		if err := queue.StartProductionConsumer(); err != nil {
			log.Printf("production consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := queue.StartConfigConsumer(configCache.Invalidate); err != nil {
			log.Printf("config consumer stopped: %v", err)
		}
	}()

	e := echo.New()

	// Redis-backed rate limiting and response caching wrap every route.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	productH := handler.NewProductHandler(products)
	assignmentH := handler.NewAssignmentHandler(assignments, products, users)
	productionH := handler.NewProductionHandler(assignments, products, counters, records, users, configCache)
	labelH := handler.NewLabelConfigHandler(labelConfigs, configCache)
	reprintH := handler.NewReprintHandler(reprints, records, products, configCache)
	reportH := handler.NewReportHandler(records, products)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterProducts(e, productH, cfg.JWTSecret)
	router.RegisterAssignments(e, assignmentH, cfg.JWTSecret)
	router.RegisterProduction(e, productionH, cfg.JWTSecret)
	router.RegisterLabelConfig(e, labelH, cfg.JWTSecret)
	router.RegisterReprints(e, reprintH, cfg.JWTSecret)
	router.RegisterReports(e, reportH, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
