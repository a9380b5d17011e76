package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/config"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/consumer"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/logger"
	sqsqueue "github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/queue/sqs"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository/memory"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository/sheets"
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

	log.Info("Starting consumer service",
		zap.String("environment", cfg.Service.Environment))

	if cfg.SQS.QueueURL == "" {
		log.Fatal("Consumer requires a tracking queue, set SQS_QUEUE_URL")
	}

	ctx := context.Background()

	var eventRepo repository.EventRepository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, err := sheets.NewClient(ctx, &cfg.Sheets, log)
		if err != nil {
			log.Fatal("Failed to create Sheets client", zap.Error(err))
		}
		eventRepo = sheets.NewRepository(sheetsClient, log)
	} else {
		log.Warn("No spreadsheet configured, consuming into in-memory store")
		eventRepo = memory.NewStore()
	}

	sqsClient, err := sqsqueue.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	c := consumer.NewConsumer(cfg, sqsClient, eventRepo, log)

	// Health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Consumer.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Consumer starting")

	go func() {
		if err := c.Start(consumerCtx); err != nil {
			log.Fatal("Consumer error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down consumer gracefully")
	cancel()
}
