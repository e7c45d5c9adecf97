package main // Entry point package

import (
	"context"   // shutdown deadline
	"log"       // Logging library
	"net/http"  // http.ErrServerClosed comparison
	"os"        // signal channel
	"os/signal" // SIGINT/SIGTERM notification
	"syscall"   // SIGTERM constant
	"time"      // shutdown timeout

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/matchpoint/court-booking/internal/config"     // environment configuration
	"github.com/matchpoint/court-booking/internal/database"   // MySQL connection pool
	"github.com/matchpoint/court-booking/internal/handler"    // HTTP handlers
	"github.com/matchpoint/court-booking/internal/middleware" // cache and rate limiting
	"github.com/matchpoint/court-booking/internal/queue"      // booking-changed consumer
	"github.com/matchpoint/court-booking/internal/repository" // data access layer
	"github.com/matchpoint/court-booking/internal/router"     // route registration
	queuepublisher "github.com/matchpoint/court-booking/internal/service" // RabbitMQ event publisher
	"github.com/matchpoint/court-booking/internal/slot" // slot engine
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client turns the cache and the rate
	// limiter into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	venueRepo := repository.NewVenueRepo(db)
	courtRepo := repository.NewCourtRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	matchRepo := repository.NewMatchRequestRepo(db)

	engine := slot.NewEngine(courtRepo, bookingRepo, queuepublisher.NewPublisher())

	authH := handler.NewAuthHandler(userRepo, tokenRepo, &cfg)
	ownerH := handler.NewOwnerHandler(venueRepo, courtRepo, bookingRepo, engine)
	playerH := handler.NewPlayerHandler(engine, bookingRepo, venueRepo)
	matchH := handler.NewMatchHandler(matchRepo, bookingRepo, userRepo)
	publicH := handler.NewPublicHandler(venueRepo, courtRepo, engine)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)
	router.RegisterPlayer(e, playerH, matchH, cfg.JWTSecret)
	router.RegisterBookingCancel(e, playerH, ownerH, cfg.JWTSecret)

	// Booking-changed events are consumed in the background and appended
	// to logs/booking.log; the consumer reconnects on broker failure.
	go queue.StartBookingConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
