package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/config"
	"github.com/roomescape/reservation-service/internal/database"
	"github.com/roomescape/reservation-service/internal/handler"
	"github.com/roomescape/reservation-service/internal/middleware"
	"github.com/roomescape/reservation-service/internal/queue"
	"github.com/roomescape/reservation-service/internal/repository"
	"github.com/roomescape/reservation-service/internal/router"
	"github.com/roomescape/reservation-service/internal/service"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	tokenTTL := time.Duration(cfg.TokenTTLMin) * time.Minute
	tokens := auth.NewTokenService(cfg.TokenSecret, tokenTTL)

	members := repository.NewMemberRepo(db)
	times := repository.NewReservationTimeRepo(db)
	themes := repository.NewThemeRepo(db)
	reservations := repository.NewReservationRepo(db)

	authSvc := service.NewAuthService(members, tokens, cfg.BcryptCost)
	resvSvc := service.NewReservationService(times, themes, reservations)

	authHandler := handler.NewAuthHandler(authSvc, tokenTTL)
	catalogHandler := handler.NewCatalogHandler(times, themes)
	resvHandler := handler.NewReservationHandler(resvSvc)
	adminHandler := handler.NewAdminHandler(times, themes, resvSvc)

	// Redis is optional; without it the rate limiter and catalog cache
	// are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and catalog cache disabled")
	}
	loginLimit := middleware.LoginRateLimit(config.LoadRateLimitConfig(), rdb)
	catalogCache := middleware.CatalogCache(rdb, 30*time.Second, 1<<20)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, tokens, loginLimit)
	router.RegisterCatalog(e, catalogHandler, catalogCache)
	router.RegisterCustomer(e, resvHandler, tokens)
	router.RegisterAdmin(e, adminHandler, tokens)

	// Audit-log consumer; reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
