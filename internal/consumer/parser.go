package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// JSONEventParser implements MessageParser for JSON-formatted tracking
// event messages
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse parses a JSON message body into an AttributionEvent
func (p *JSONEventParser) Parse(body []byte) (*domain.AttributionEvent, error) {
	var msgBody map[string]interface{}
	if err := json.Unmarshal(body, &msgBody); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	name := getStringField(msgBody, "event_name")
	if name == "" {
		return nil, fmt.Errorf("message carries no event_name")
	}

	id := getStringField(msgBody, "event_id")
	if id == "" {
		id = uuid.NewString()
	}

	ts := getInt64Field(msgBody, "timestamp")
	timestamp := time.Now().UTC()
	if ts > 0 {
		timestamp = time.Unix(ts, 0).UTC()
	}

	event := &domain.AttributionEvent{
		ID:              id,
		CustomerID:      getStringField(msgBody, "customer_id"),
		CRMContactID:    getStringField(msgBody, "crm_contact_id"),
		EventName:       name,
		EventCategory:   getStringField(msgBody, "event_category"),
		Source:          getStringField(msgBody, "source"),
		Medium:          getStringField(msgBody, "medium"),
		Campaign:        getStringField(msgBody, "campaign"),
		GCLID:           getStringField(msgBody, "gclid"),
		FBCLID:          getStringField(msgBody, "fbclid"),
		UTMTerm:         getStringField(msgBody, "utm_term"),
		UTMContent:      getStringField(msgBody, "utm_content"),
		GAClientID:      getStringField(msgBody, "ga_client_id"),
		SessionID:       getStringField(msgBody, "session_id"),
		Referrer:        getStringField(msgBody, "referrer"),
		PagePath:        getStringField(msgBody, "page_path"),
		DeviceType:      getStringField(msgBody, "device_type"),
		City:            getStringField(msgBody, "city"),
		ConversionValue: getFloatField(msgBody, "conversion_value"),
		Timestamp:       timestamp,
	}

	return event, nil
}

// Helper functions for extracting fields from parsed JSON
func getStringField(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Field(m map[string]interface{}, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}

func getFloatField(m map[string]interface{}, key string) float64 {
	if val, ok := m[key].(float64); ok {
		return val
	}
	return 0
}
