package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/queue"
)

// TrackingService accepts site-side tracking events and publishes them to
// the queue for the consumer to persist
type TrackingService struct {
	publisher queue.EventPublisher
	log       *zap.Logger
}

// NewTrackingService creates a new tracking service
func NewTrackingService(publisher queue.EventPublisher, log *zap.Logger) *TrackingService {
	return &TrackingService{
		publisher: publisher,
		log:       log,
	}
}

// computeEventID generates a deterministic event ID based on event content.
// The queue delivers at least once; a content-derived id keeps replays
// recognizable downstream.
func computeEventID(event *dto.TrackEventRequest) string {
	data := fmt.Sprintf("%s|%s|%d|%s|%s",
		event.SessionID,
		event.EventName,
		event.Timestamp,
		event.PagePath,
		event.Source,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ProcessEvent validates and publishes a single tracking event
func (s *TrackingService) ProcessEvent(event *dto.TrackEventRequest) (string, error) {
	ctx := context.Background()

	currentTime := time.Now().Unix()
	if event.Timestamp > currentTime+1 {
		s.log.Warn("Timestamp validation failed: future timestamp",
			zap.Int64("event_timestamp", event.Timestamp),
			zap.Int64("current_time", currentTime),
			zap.String("event_name", event.EventName))
		return "", fmt.Errorf("timestamp cannot be in the future: %d > %d", event.Timestamp, currentTime)
	}

	eventID := computeEventID(event)

	if err := s.publisher.PublishEvent(ctx, event, eventID); err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return eventID, nil
}

// ProcessBulkEvents validates and publishes multiple tracking events
func (s *TrackingService) ProcessBulkEvents(events []dto.TrackEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errors []string

	for i, event := range events {
		eventID, err := s.ProcessEvent(&event)
		if err != nil {
			errors = append(errors, err.Error())
			s.log.Warn("Failed to process event in bulk",
				zap.Int("index", i),
				zap.Error(err),
				zap.String("event_name", event.EventName))
			continue
		}
		eventIDs = append(eventIDs, eventID)
	}

	return eventIDs, errors, nil
}
