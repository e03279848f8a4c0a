package main

import (
	"fmt"
	"log"

	"backend/configs"
	"backend/pkg/logger"
	"backend/pkg/payments"
	"backend/routes"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if cfg.Env == "dev" {
		if err := configs.SeedDemo(); err != nil {
			log.Fatalf("seed demo failed: %v", err)
		}
	}

	// Payment provider: mock unless Stripe credentials are configured.
	var provider payments.Provider
	if cfg.PaymentsMockMode || cfg.StripeSecretKey == "" {
		provider = payments.NewMockProvider()
		zlog.Info("payments running in mock mode")
	} else {
		provider, err = payments.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		if err != nil {
			log.Fatalf("stripe init failed: %v", err)
		}
	}

	// Realtime notification hub
	hub := ws.NewNotifyHub(zlog)
	go hub.Run()

	// HTTP
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.RegisterRoutes(r, cfg, provider, hub, zlog)

	addr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
