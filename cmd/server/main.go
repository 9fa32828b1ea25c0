package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/yallaevents/ems-backend/internal/config"
	"github.com/yallaevents/ems-backend/internal/database"
	"github.com/yallaevents/ems-backend/internal/handler"
	"github.com/yallaevents/ems-backend/internal/middleware"
	"github.com/yallaevents/ems-backend/internal/queue"
	"github.com/yallaevents/ems-backend/internal/repository"
	"github.com/yallaevents/ems-backend/internal/router"
	"github.com/yallaevents/ems-backend/internal/storage"
	"github.com/yallaevents/ems-backend/internal/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Bootstrap(ctx, db, cfg.DBDriver); err != nil {
		log.Fatalf("schema bootstrap: %v", err)
	}

	// Seed the admin credential so login always checks a stored bcrypt hash.
	adminRepo := repository.NewAdminRepo(db)
	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if err := adminRepo.Ensure(ctx, cfg.AdminEmail, hash); err != nil {
		log.Fatalf("seed admin credential: %v", err)
	}

	var blobs storage.BlobStore
	switch cfg.BlobDriver {
	case "s3":
		blobs, err = storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	default:
		blobs, err = storage.NewLocalStore(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	eventRepo := repository.NewEventRepo(db)
	regRepo := repository.NewRegistrationRepo(db)
	pendingRepo := repository.NewPendingEventRepo(db)
	contactRepo := repository.NewContactRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	eventH := handler.NewEventHandler(eventRepo, regRepo, blobs)
	adminEventH := handler.NewAdminEventHandler(eventRepo, regRepo, blobs)
	regH := handler.NewRegistrationHandler(eventRepo, regRepo)
	pendingH := handler.NewPendingHandler(pendingRepo, blobs)
	contactH := handler.NewContactHandler(contactRepo)
	authH := handler.NewAuthHandler(adminRepo, cfg.JWTSecret, cfg.TokenTTLHours)
	statsH := handler.NewStatsHandler(statsRepo)

	// Redis is optional: without it the cache and limiter are pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, caching and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, cacheMW, eventH, regH, pendingH, contactH, authH)
	router.RegisterAdmin(e, cfg.JWTSecret, adminEventH, pendingH, authH, statsH)

	if local, ok := blobs.(*storage.LocalStore); ok {
		e.Static("/uploads", local.Dir())
	}

	// Activity log consumer; reconnects on its own and never blocks startup.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
