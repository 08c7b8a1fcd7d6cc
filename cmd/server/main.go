package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/config"
	"github.com/movify/movify-server/internal/database"
	"github.com/movify/movify-server/internal/handler"
	"github.com/movify/movify-server/internal/queue"
	"github.com/movify/movify-server/internal/repository"
	"github.com/movify/movify-server/internal/router"
	"github.com/movify/movify-server/internal/service"
	"github.com/movify/movify-server/internal/tmdb"
)

func main() {
	// Load .env when present; in production the variables come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Redis is optional. With a nil client the cache and rate limit
	// middleware pass requests through and invalidation is a no-op.
	rdb := config.NewRedisClient()

	catalog := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.TMDBLanguage)

	statusRepo := repository.NewStatusRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	catalogSvc := service.NewCatalogService(catalog, statusRepo, cfg.WatchRegion)
	statusSvc := service.NewStatusService(statusRepo, queue.PublishStatusChanged)

	authHandler := &handler.AuthHandler{Cfg: cfg, Tokens: tokenRepo}
	catalogHandler := &handler.CatalogHandler{Svc: catalogSvc}
	movieHandler := &handler.MovieHandler{Svc: catalogSvc}
	libraryHandler := &handler.LibraryHandler{Svc: catalogSvc}
	statusHandler := &handler.StatusHandler{Svc: statusSvc}

	// Consume status change events to invalidate cached catalog responses
	// and append the audit log. Runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartStatusConsumer(rdb, cacheCfg); err != nil {
			log.Printf("status consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogHandler, movieHandler, rdb, cacheCfg, rlCfg)
	router.RegisterLibrary(e, libraryHandler, statusHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
