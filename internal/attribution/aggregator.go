package attribution

import (
	"time"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
)

// DefaultPeriod is used when the requested period is unrecognized
const DefaultPeriod = "30d"

var periodWindows = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// NormalizePeriod maps a requested period onto a supported one
func NormalizePeriod(period string) string {
	if _, ok := periodWindows[period]; ok {
		return period
	}
	return DefaultPeriod
}

// Summarize rolls the event set up into source/campaign/medium buckets for
// the trailing window ending at now. Pure: identical inputs produce
// identical aggregates.
//
// An event timestamped exactly at now minus the window is included. Empty
// sources group under "direct" and empty mediums under "none"; events
// without a campaign are excluded from the campaign rollup but still count
// toward every total.
func Summarize(events []domain.AttributionEvent, period string, now time.Time) *dto.AttributionReport {
	period = NormalizePeriod(period)
	cutoff := now.Add(-periodWindows[period])

	report := &dto.AttributionReport{
		Period:     period,
		BySource:   make(map[string]*dto.AttributionBucket),
		ByCampaign: make(map[string]*dto.AttributionBucket),
		ByMedium:   make(map[string]*dto.AttributionBucket),
	}

	for i := range events {
		event := &events[i]
		if event.Timestamp.Before(cutoff) || event.Timestamp.After(now) {
			continue
		}

		source := event.Source
		if source == "" {
			source = "direct"
		}
		medium := event.Medium
		if medium == "" {
			medium = "none"
		}

		accumulate(report.BySource, source, event)
		accumulate(report.ByMedium, medium, event)
		if event.Campaign != "" {
			accumulate(report.ByCampaign, event.Campaign, event)
		}

		report.TotalLeads++
		report.TotalValue += event.ConversionValue
		if event.Paid() {
			report.PaidLeads++
		} else {
			report.OrganicLeads++
		}
	}

	return report
}

func accumulate(buckets map[string]*dto.AttributionBucket, key string, event *domain.AttributionEvent) {
	bucket := buckets[key]
	if bucket == nil {
		bucket = &dto.AttributionBucket{}
		buckets[key] = bucket
	}

	bucket.Leads++
	bucket.Value += event.ConversionValue
	if event.EventCategory == domain.CategoryConversion {
		bucket.Conversions++
	}
}
