package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"storefront-backoffice/internal/client"
	"storefront-backoffice/internal/config"
	"storefront-backoffice/internal/repository"
	"storefront-backoffice/internal/server"
	"storefront-backoffice/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// load .env into os.Environ
	envErr := godotenv.Load()

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		logrus.WithError(err).Fatal("parse config")
	}

	log := client.NewLogger(cfg.Log)
	if envErr != nil {
		log.Debug("no .env file found (ok in prod)")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}

	db, err := client.InitDatabaseClient(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("init database")
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	editLogRepo := repository.NewEditLogRepository(db)

	couponService := service.NewCouponService(db, couponRepo)
	inventoryService := service.NewInventoryService(db, productRepo, inventoryRepo)
	orderEditService := service.NewOrderEditService(
		db,
		orderRepo,
		productRepo,
		inventoryRepo,
		couponRepo,
		editLogRepo,
		couponService,
		log.WithField("component", "order_edit"),
	)

	srv := server.NewServer(cfg.Auth, log, orderEditService, couponService, inventoryService)

	serverAddr := cfg.HTTP.Address()
	log.WithFields(logrus.Fields{"addr": serverAddr, "env": cfg.Environment.Name}).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
