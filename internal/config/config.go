package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds process-level settings
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
}

// CRM holds settings for the external contact system.
// APIKey is optional: without it every write degrades to the webhook path
// and read operations return an explicit error.
type CRM struct {
	WebhookURL string `envconfig:"CRM_WEBHOOK_URL"`
	APIBaseURL string `envconfig:"CRM_API_BASE_URL" default:"https://services.leadconnectorhq.com"`
	APIKey     string `envconfig:"CRM_API_KEY"`
	APIVersion string `envconfig:"CRM_API_VERSION" default:"2021-07-28"`
	LocationID string `envconfig:"CRM_LOCATION_ID"`
	TimeoutSec int    `envconfig:"CRM_TIMEOUT_SEC" default:"10"`
}

// Sheets holds settings for the spreadsheet record store.
// An empty SpreadsheetID switches the service to the in-memory fallback store.
type Sheets struct {
	SpreadsheetID   string `envconfig:"SHEETS_SPREADSHEET_ID"`
	CredentialsJSON string `envconfig:"SHEETS_CREDENTIALS_JSON"`
}

// SQS holds settings for the tracking-event queue
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL"`
	Region   string `envconfig:"SQS_REGION" default:"us-east-1"`
}

// Consumer holds settings for the tracking-event consumer
type Consumer struct {
	BatchSizeMax    int    `envconfig:"CONSUMER_BATCH_SIZE_MAX" default:"50"`
	BatchTimeoutSec int    `envconfig:"CONSUMER_BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
}

// Config is the full service configuration, built once at process start
// and passed by reference into each component constructor.
type Config struct {
	Service  Service
	CRM      CRM
	Sheets   Sheets
	SQS      SQS
	Consumer Consumer
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
