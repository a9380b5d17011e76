package memory

import (
	"time"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

var fallbackTime = time.Date(2025, time.March, 12, 15, 4, 5, 0, time.UTC)

// Static dataset served when no spreadsheet is configured
var fallbackCustomers = []domain.CustomerRecord{
	{
		ID:              "local-sample-1",
		FirstName:       "Dana",
		LastName:        "Whitfield",
		Email:           "dana.whitfield@example.com",
		Phone:           "555-0142",
		City:            "Asheville",
		State:           "NC",
		Source:          "website",
		LeadTemperature: domain.TemperatureWarm,
		Tags:            []string{"website", "kitchen-remodel"},
		Status:          "active",
		CreatedAt:       fallbackTime,
		UpdatedAt:       fallbackTime,
	},
	{
		ID:              "local-sample-2",
		FirstName:       "Marcus",
		LastName:        "Reyes",
		Email:           "marcus.reyes@example.com",
		Source:          "google",
		LeadTemperature: domain.TemperatureNew,
		Tags:            []string{"google", "google-ads"},
		Attribution: domain.Attribution{
			GCLID:       "sample-gclid",
			UTMSource:   "google",
			UTMMedium:   "cpc",
			UTMCampaign: "spring-promo",
		},
		Status:    "active",
		CreatedAt: fallbackTime.Add(24 * time.Hour),
		UpdatedAt: fallbackTime.Add(24 * time.Hour),
	},
}

var fallbackEvents = []domain.AttributionEvent{
	{
		ID:            "local-sample-event-1",
		CustomerID:    "local-sample-2",
		EventName:     "contact_form_submission",
		EventCategory: domain.CategoryConversion,
		Source:        "google",
		Medium:        "cpc",
		Campaign:      "spring-promo",
		GCLID:         "sample-gclid",
		PagePath:      "/contact",
		Timestamp:     fallbackTime.Add(24 * time.Hour),
	},
	{
		ID:        "local-sample-event-2",
		EventName: "page_view",
		PagePath:  "/services/kitchen-remodel",
		Timestamp: fallbackTime.Add(25 * time.Hour),
	},
}
