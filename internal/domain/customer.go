package domain

import "time"

// Lead temperature values for CustomerRecord.LeadTemperature
const (
	TemperatureNew      = "new"
	TemperatureHot      = "hot"
	TemperatureWarm     = "warm"
	TemperatureCold     = "cold"
	TemperatureImported = "imported"
)

// Attribution is the click/visit context captured at the moment a
// customer converts. It is snapshotted onto the customer row at creation
// and never updated afterwards.
type Attribution struct {
	GCLID          string
	FBCLID         string
	UTMSource      string
	UTMMedium      string
	UTMCampaign    string
	UTMTerm        string
	UTMContent     string
	GAClientID     string
	FirstVisitPage string
	ConversionPage string
}

// CustomerRecord is one row in the "customers" table.
//
// ID is generated locally and never reassigned. CRMContactID is empty for
// local-only rows and filled in once the CRM accepts the contact or a later
// sync matches one. Rows are never hard-deleted, only flagged via Status.
type CustomerRecord struct {
	ID           string
	CRMContactID string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Zip       string

	Source             string
	LeadScore          int
	LeadTemperature    string
	Tags               []string
	ServicesInterested []string
	EstimatedValue     float64
	Status             string

	Attribution Attribution

	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSyncedAt time.Time

	// RowIndex is the 1-based sheet row this record was read from.
	// It is positional metadata, not part of the stored row.
	RowIndex int
}

// DeliveryResult reports which CRM delivery paths succeeded for a write.
// The operation as a whole is accepted even when both paths failed, because
// the record store write is the durability guarantee; callers that care can
// distinguish "fully delivered" from "degraded but accepted".
type DeliveryResult struct {
	WebhookOK  bool
	APIOK      bool
	ExternalID string
}
