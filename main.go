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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"booking-be/internal/cache"
	"booking-be/internal/config"
	"booking-be/internal/controllers"
	"booking-be/internal/database"
	"booking-be/internal/jwt"
	"booking-be/internal/logger"
	"booking-be/internal/middleware"
	"booking-be/internal/repository"
	"booking-be/internal/routes"
	"booking-be/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.Init(cfg.IsProduction(), cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	gdb, err := database.NewGorm(db, !cfg.IsProduction())
	if err != nil {
		zlog.Fatal("failed to initialize gorm", zap.Error(err))
	}

	// Redis is optional; without it the catalog is always read from the database
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			zlog.Warn("redis unavailable, continuing without cache", zap.Error(err))
			cacheClient = nil
		} else {
			zlog.Info("connected to redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gdb)
	hospitalRepo := repository.NewHospitalRepository(gdb)
	bookingRepo := repository.NewBookingRepository(gdb)

	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.TokenTTL())

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	hospitalService := service.NewHospitalService(hospitalRepo, cacheClient, cfg.CacheTTL())
	bookingService := service.NewBookingService(bookingRepo, hospitalRepo)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer generalRateLimiter.Stop()
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	defer authRateLimiter.Stop()

	router := routes.NewRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(authService, jwtService.TTL(), cfg.IsProduction()),
		Hospital: controllers.NewHospitalController(hospitalService),
		Booking:  controllers.NewBookingController(bookingService),
		QRCode:   controllers.NewQRCodeController(bookingService),
	}, routes.Options{
		JWT:          jwtService,
		Roles:        authService,
		GeneralLimit: generalRateLimiter,
		AuthLimit:    authRateLimiter,
		ClientURL:    cfg.ClientURL,
		Logger:       zlog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
