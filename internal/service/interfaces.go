package service

import (
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
)

// TrackingServicer defines the interface for tracking-event intake
type TrackingServicer interface {
	ProcessEvent(event *dto.TrackEventRequest) (string, error)
	ProcessBulkEvents(events []dto.TrackEventRequest) ([]string, []string, error)
}
