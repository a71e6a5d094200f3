// Command seed creates the admin account, or promotes it if it already
// exists as a regular user. Running it twice changes nothing.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"booking-be/internal/config"
	"booking-be/internal/database"
	"booking-be/internal/jwt"
	"booking-be/internal/logger"
	"booking-be/internal/repository"
	"booking-be/internal/service"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.Init(cfg.IsProduction(), cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	gdb, err := database.NewGorm(db, false)
	if err != nil {
		zlog.Fatal("failed to initialize gorm", zap.Error(err))
	}

	authService := service.NewAuthService(
		repository.NewUserRepository(gdb),
		jwt.NewJWTService(cfg.JWTSecret, cfg.TokenTTL()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, created, err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		zlog.Fatal("failed to seed admin", zap.Error(err))
	}

	if created {
		zlog.Info("admin user created", zap.Uint("id", user.ID), zap.String("email", user.Email))
	} else {
		zlog.Info("admin user already present", zap.Uint("id", user.ID), zap.String("email", user.Email))
	}
}
