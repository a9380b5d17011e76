package domain

import "time"

// Event category assigned to events that represent a completed conversion
const CategoryConversion = "conversion"

// AttributionEvent is one row in the "analytics_events" table.
// Events are facts: written exactly once per tracked interaction and never
// updated afterwards.
type AttributionEvent struct {
	ID           string
	CustomerID   string
	CRMContactID string

	EventName     string
	EventCategory string
	Source        string
	Medium        string
	Campaign      string

	GCLID      string
	FBCLID     string
	UTMTerm    string
	UTMContent string
	GAClientID string
	SessionID  string
	Referrer   string
	PagePath   string
	DeviceType string
	City       string

	ConversionValue float64
	Timestamp       time.Time
}

// Paid reports whether the event came through a paid channel: a Google or
// Facebook click id, or a cpc / paid-social medium.
func (e *AttributionEvent) Paid() bool {
	if e.GCLID != "" || e.FBCLID != "" {
		return true
	}
	return e.Medium == "cpc" || e.Medium == "paid-social"
}
