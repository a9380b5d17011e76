package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/config"
)

// Client wraps the Google Sheets service for one spreadsheet
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	log           *zap.Logger
}

// NewClient creates a new Sheets client with the given configuration
func NewClient(ctx context.Context, cfg *config.Sheets, log *zap.Logger) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: no spreadsheet id configured")
	}

	log.Info("Connecting to Google Sheets",
		zap.String("spreadsheet_id", cfg.SpreadsheetID))

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		log.Error("Failed to create Sheets service", zap.Error(err))
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		log:           log,
	}, nil
}

// Service returns the underlying Sheets service
func (c *Client) Service() *sheets.Service {
	return c.service
}

// SpreadsheetID returns the configured spreadsheet id
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}
