package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/attribution"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/config"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/crm"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/handler"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/logger"
	sqsqueue "github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/queue/sqs"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository/memory"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository/sheets"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/service"
	syncengine "github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/sync"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx := context.Background()

	// Record store: sheets when configured, in-memory fallback otherwise
	var customerRepo repository.CustomerRepository
	var eventRepo repository.EventRepository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, err := sheets.NewClient(ctx, &cfg.Sheets, log)
		if err != nil {
			log.Fatal("Failed to create Sheets client", zap.Error(err))
		}
		repo := sheets.NewRepository(sheetsClient, log)
		customerRepo = repo
		eventRepo = repo
	} else {
		log.Warn("No spreadsheet configured, using in-memory record store")
		store := memory.NewFallbackStore()
		customerRepo = store
		eventRepo = store
	}

	gateway := crm.NewClient(&cfg.CRM, log)

	engine := syncengine.NewEngine(customerRepo, eventRepo, gateway, log)
	ingester := webhook.NewIngester(engine, gateway, cfg.CRM.LocationID, log)
	reporter := attribution.NewService(eventRepo, log)

	// Tracking intake is optional: without a queue the /events routes
	// report the integration as unavailable
	var tracking service.TrackingServicer
	if cfg.SQS.QueueURL != "" {
		sqsClient, err := sqsqueue.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		tracking = service.NewTrackingService(sqsClient, log)
	} else {
		log.Warn("No tracking queue configured, /events routes disabled")
	}

	h := handler.NewHandler(engine, reporter, ingester, tracking, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
