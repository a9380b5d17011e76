package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DeliveryStatus reports which CRM delivery paths succeeded for a create
type DeliveryStatus struct {
	WebhookOK bool `json:"webhook_ok"`
	APIOK     bool `json:"api_ok"`
}

// CreateCustomerResponse represents a successful customer intake response
type CreateCustomerResponse struct {
	ID           string         `json:"id"`
	CRMContactID string         `json:"crm_contact_id,omitempty"`
	Delivery     DeliveryStatus `json:"delivery"`
}

// UpdateCustomerResponse represents a successful customer patch response
type UpdateCustomerResponse struct {
	ID        string `json:"id"`
	RowIndex  int    `json:"row_index"`
	UpdatedAt string `json:"updated_at"`
}

// SyncResponse reports the outcome of a full pull sync. Errors is non-fatal:
// partial results are returned alongside whatever went wrong.
type SyncResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// AttributionBucket holds the per-group rollup counters
type AttributionBucket struct {
	Leads       int     `json:"leads"`
	Value       float64 `json:"value"`
	Conversions int     `json:"conversions"`
}

// AttributionReport is the windowed attribution rollup
type AttributionReport struct {
	Period       string                        `json:"period"`
	BySource     map[string]*AttributionBucket `json:"by_source"`
	ByCampaign   map[string]*AttributionBucket `json:"by_campaign"`
	ByMedium     map[string]*AttributionBucket `json:"by_medium"`
	TotalLeads   int                           `json:"total_leads"`
	TotalValue   float64                       `json:"total_value"`
	PaidLeads    int                           `json:"paid_leads"`
	OrganicLeads int                           `json:"organic_leads"`
}

// TrackEventResponse represents a successful event ingestion response
type TrackEventResponse struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// TrackEventsBulkResponse represents a successful bulk event ingestion response
type TrackEventsBulkResponse struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	EventIDs []string `json:"event_ids,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}
