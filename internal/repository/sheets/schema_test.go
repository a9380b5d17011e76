package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

func TestCustomerRow_RoundTrip(t *testing.T) {
	created := time.Date(2025, time.May, 10, 9, 30, 0, 0, time.UTC)
	record := domain.CustomerRecord{
		ID:                 "local-1",
		CRMContactID:       "crm-1",
		FirstName:          "Dana",
		LastName:           "Reyes",
		Email:              "dana@example.com",
		Phone:              "555-0100",
		City:               "Asheville",
		State:              "NC",
		Zip:                "28801",
		Source:             "website",
		LeadScore:          85,
		LeadTemperature:    domain.TemperatureHot,
		Tags:               []string{"website", "google-ads"},
		ServicesInterested: []string{"kitchen-remodel"},
		EstimatedValue:     1500.5,
		Status:             "active",
		Attribution: domain.Attribution{
			GCLID:          "gclid-1",
			UTMSource:      "google",
			UTMMedium:      "cpc",
			ConversionPage: "/contact",
		},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	row := marshalCustomerRow(&record)
	assert.Len(t, row, len(customerColumns))

	got := unmarshalCustomerRow(row, 5)
	record.RowIndex = 5
	assert.Equal(t, record, got)
}

func TestCustomerRow_ShortRowTolerated(t *testing.T) {
	row := []interface{}{"local-1", "", "Dana"}

	got := unmarshalCustomerRow(row, 2)

	assert.Equal(t, "local-1", got.ID)
	assert.Equal(t, "Dana", got.FirstName)
	assert.Empty(t, got.Email)
	assert.Zero(t, got.LeadScore)
	assert.Nil(t, got.Tags)
	assert.True(t, got.CreatedAt.IsZero())
	assert.Equal(t, 2, got.RowIndex)
}

func TestCustomerRow_GarbageCellsYieldZeroValues(t *testing.T) {
	row := make([]interface{}, len(customerColumns))
	for i := range row {
		row[i] = ""
	}
	row[11] = "not-a-number"
	row[15] = "NaN-ish"
	row[27] = "yesterday"

	got := unmarshalCustomerRow(row, 2)

	assert.Zero(t, got.LeadScore)
	assert.Zero(t, got.EstimatedValue)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestEventRow_RoundTrip(t *testing.T) {
	ts := time.Date(2025, time.May, 10, 9, 30, 0, 0, time.UTC)
	event := domain.AttributionEvent{
		ID:              "evt-1",
		CustomerID:      "local-1",
		EventName:       "contact_form_submission",
		EventCategory:   domain.CategoryConversion,
		Source:          "google",
		Medium:          "cpc",
		Campaign:        "spring-promo",
		GCLID:           "gclid-1",
		SessionID:       "sess-1",
		PagePath:        "/contact",
		ConversionValue: 1200,
		Timestamp:       ts,
	}

	row := marshalEventRow(&event)
	assert.Len(t, row, len(eventColumns))

	got := unmarshalEventRow(row)
	assert.Equal(t, event, got)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b "))
}

func TestFormatters_ZeroValuesWriteEmptyCells(t *testing.T) {
	assert.Equal(t, "", formatInt(0))
	assert.Equal(t, "85", formatInt(85))
	assert.Equal(t, "", formatFloat(0))
	assert.Equal(t, "1500.5", formatFloat(1500.5))
	assert.Equal(t, "", formatTime(time.Time{}))
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(1))
	assert.Equal(t, "T", columnLetter(20))
	assert.Equal(t, "Z", columnLetter(26))
	assert.Equal(t, "AA", columnLetter(27))
	assert.Equal(t, "AD", columnLetter(30))
}

func TestColumnCounts(t *testing.T) {
	assert.Len(t, customerColumns, 30)
	assert.Len(t, eventColumns, 20)
}
