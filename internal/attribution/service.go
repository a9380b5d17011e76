package attribution

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository"
)

// Reporter produces attribution rollups for the API surface
type Reporter interface {
	Report(ctx context.Context, period string) (*dto.AttributionReport, error)
}

// Service reads the event table and feeds it through the pure aggregator
// with the current instant as "now"
type Service struct {
	events repository.EventRepository
	log    *zap.Logger
	now    func() time.Time
}

// NewService creates a new attribution service
func NewService(events repository.EventRepository, log *zap.Logger) *Service {
	return &Service{
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Report builds the rollup for the requested trailing period
func (s *Service) Report(ctx context.Context, period string) (*dto.AttributionReport, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	report := Summarize(events, period, s.now().UTC())

	s.log.Info("Attribution report built",
		zap.String("period", report.Period),
		zap.Int("total_leads", report.TotalLeads),
		zap.Int("paid_leads", report.PaidLeads))
	return report, nil
}
