package sheets

import (
	"strconv"
	"strings"
	"time"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// Column order is part of the storage contract: every write maps a record to
// exactly this order, and changing it without migrating existing data
// corrupts historical rows. Row 1 is the header; data rows start at row 2.
var customerColumns = []string{
	"id",
	"crm_contact_id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"address",
	"city",
	"state",
	"zip",
	"source",
	"lead_score",
	"lead_temperature",
	"tags",
	"services_interested",
	"estimated_value",
	"status",
	"gclid",
	"fbclid",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
	"ga_client_id",
	"first_visit_page",
	"conversion_page",
	"created_at",
	"updated_at",
	"last_synced_at",
}

var eventColumns = []string{
	"id",
	"customer_id",
	"crm_contact_id",
	"event_name",
	"event_category",
	"source",
	"medium",
	"campaign",
	"gclid",
	"fbclid",
	"utm_term",
	"utm_content",
	"ga_client_id",
	"session_id",
	"referrer",
	"page_path",
	"device_type",
	"city",
	"conversion_value",
	"timestamp",
}

func marshalCustomerRow(r *domain.CustomerRecord) []interface{} {
	return []interface{}{
		r.ID,
		r.CRMContactID,
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.Address,
		r.City,
		r.State,
		r.Zip,
		r.Source,
		formatInt(r.LeadScore),
		r.LeadTemperature,
		joinList(r.Tags),
		joinList(r.ServicesInterested),
		formatFloat(r.EstimatedValue),
		r.Status,
		r.Attribution.GCLID,
		r.Attribution.FBCLID,
		r.Attribution.UTMSource,
		r.Attribution.UTMMedium,
		r.Attribution.UTMCampaign,
		r.Attribution.UTMTerm,
		r.Attribution.UTMContent,
		r.Attribution.GAClientID,
		r.Attribution.FirstVisitPage,
		r.Attribution.ConversionPage,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
		formatTime(r.LastSyncedAt),
	}
}

func unmarshalCustomerRow(row []interface{}, rowIndex int) domain.CustomerRecord {
	return domain.CustomerRecord{
		ID:                 cell(row, 0),
		CRMContactID:       cell(row, 1),
		FirstName:          cell(row, 2),
		LastName:           cell(row, 3),
		Email:              cell(row, 4),
		Phone:              cell(row, 5),
		Address:            cell(row, 6),
		City:               cell(row, 7),
		State:              cell(row, 8),
		Zip:                cell(row, 9),
		Source:             cell(row, 10),
		LeadScore:          parseInt(cell(row, 11)),
		LeadTemperature:    cell(row, 12),
		Tags:               splitList(cell(row, 13)),
		ServicesInterested: splitList(cell(row, 14)),
		EstimatedValue:     parseFloat(cell(row, 15)),
		Status:             cell(row, 16),
		Attribution: domain.Attribution{
			GCLID:          cell(row, 17),
			FBCLID:         cell(row, 18),
			UTMSource:      cell(row, 19),
			UTMMedium:      cell(row, 20),
			UTMCampaign:    cell(row, 21),
			UTMTerm:        cell(row, 22),
			UTMContent:     cell(row, 23),
			GAClientID:     cell(row, 24),
			FirstVisitPage: cell(row, 25),
			ConversionPage: cell(row, 26),
		},
		CreatedAt:    parseTime(cell(row, 27)),
		UpdatedAt:    parseTime(cell(row, 28)),
		LastSyncedAt: parseTime(cell(row, 29)),
		RowIndex:     rowIndex,
	}
}

func marshalEventRow(e *domain.AttributionEvent) []interface{} {
	return []interface{}{
		e.ID,
		e.CustomerID,
		e.CRMContactID,
		e.EventName,
		e.EventCategory,
		e.Source,
		e.Medium,
		e.Campaign,
		e.GCLID,
		e.FBCLID,
		e.UTMTerm,
		e.UTMContent,
		e.GAClientID,
		e.SessionID,
		e.Referrer,
		e.PagePath,
		e.DeviceType,
		e.City,
		formatFloat(e.ConversionValue),
		formatTime(e.Timestamp),
	}
}

func unmarshalEventRow(row []interface{}) domain.AttributionEvent {
	return domain.AttributionEvent{
		ID:              cell(row, 0),
		CustomerID:      cell(row, 1),
		CRMContactID:    cell(row, 2),
		EventName:       cell(row, 3),
		EventCategory:   cell(row, 4),
		Source:          cell(row, 5),
		Medium:          cell(row, 6),
		Campaign:        cell(row, 7),
		GCLID:           cell(row, 8),
		FBCLID:          cell(row, 9),
		UTMTerm:         cell(row, 10),
		UTMContent:      cell(row, 11),
		GAClientID:      cell(row, 12),
		SessionID:       cell(row, 13),
		Referrer:        cell(row, 14),
		PagePath:        cell(row, 15),
		DeviceType:      cell(row, 16),
		City:            cell(row, 17),
		ConversionValue: parseFloat(cell(row, 18)),
		Timestamp:       parseTime(cell(row, 19)),
	}
}

// cell returns the string value at position i, tolerating short rows from
// sheets trimming trailing empty cells
func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return ""
}

func joinList(values []string) string {
	return strings.Join(values, ",")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// columnLetter converts a 1-based column number to its A1-notation letter
func columnLetter(n int) string {
	letter := ""
	for n > 0 {
		n--
		letter = string(rune('A'+n%26)) + letter
		n /= 26
	}
	return letter
}
