package dto

// CreateCustomerRequest represents a customer intake (contact form) submission
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`

	Source             string   `json:"source"`
	ServicesInterested []string `json:"services_interested"`
	EstimatedValue     float64  `json:"estimated_value"`
	Message            string   `json:"message"`

	GCLID          string `json:"gclid"`
	FBCLID         string `json:"fbclid"`
	UTMSource      string `json:"utm_source"`
	UTMMedium      string `json:"utm_medium"`
	UTMCampaign    string `json:"utm_campaign"`
	UTMTerm        string `json:"utm_term"`
	UTMContent     string `json:"utm_content"`
	GAClientID     string `json:"ga_client_id"`
	SessionID      string `json:"session_id"`
	Referrer       string `json:"referrer"`
	DeviceType     string `json:"device_type"`
	FirstVisitPage string `json:"first_visit_page"`
	ConversionPage string `json:"conversion_page"`
}

// UpdateCustomerRequest is an operator patch for an existing customer row.
// Only non-nil fields are applied.
type UpdateCustomerRequest struct {
	FirstName          *string   `json:"first_name"`
	LastName           *string   `json:"last_name"`
	Email              *string   `json:"email"`
	Phone              *string   `json:"phone"`
	Address            *string   `json:"address"`
	City               *string   `json:"city"`
	State              *string   `json:"state"`
	Zip                *string   `json:"zip"`
	Source             *string   `json:"source"`
	LeadScore          *int      `json:"lead_score"`
	LeadTemperature    *string   `json:"lead_temperature"`
	Tags               *[]string `json:"tags"`
	ServicesInterested *[]string `json:"services_interested"`
	EstimatedValue     *float64  `json:"estimated_value"`
	Status             *string   `json:"status"`
}

// CRMWebhookPayload is the inbound notification body the CRM posts to us.
// Only ContactID is trusted as data; the rest is a trigger.
type CRMWebhookPayload struct {
	Type       string `json:"type"`
	ContactID  string `json:"contactId"`
	LocationID string `json:"locationId"`
}

// TrackEventRequest represents a site-side tracking event submission
type TrackEventRequest struct {
	EventName     string `json:"event_name" binding:"required"`
	EventCategory string `json:"event_category"`
	CustomerID    string `json:"customer_id"`
	CRMContactID  string `json:"crm_contact_id"`

	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`

	GCLID      string `json:"gclid"`
	FBCLID     string `json:"fbclid"`
	UTMTerm    string `json:"utm_term"`
	UTMContent string `json:"utm_content"`
	GAClientID string `json:"ga_client_id"`
	SessionID  string `json:"session_id"`
	Referrer   string `json:"referrer"`
	PagePath   string `json:"page_path"`
	DeviceType string `json:"device_type"`
	City       string `json:"city"`

	ConversionValue float64 `json:"conversion_value"`
	Timestamp       int64   `json:"timestamp" binding:"required"`
}

// TrackEventsBulkRequest represents a bulk tracking event submission
type TrackEventsBulkRequest struct {
	Events []TrackEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}
