package attribution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

var reportNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, "7d", NormalizePeriod("7d"))
	assert.Equal(t, "90d", NormalizePeriod("90d"))
	assert.Equal(t, "30d", NormalizePeriod(""))
	assert.Equal(t, "30d", NormalizePeriod("14d"))
	assert.Equal(t, "30d", NormalizePeriod("forever"))
}

func TestSummarize_BucketsAndTotals(t *testing.T) {
	events := []domain.AttributionEvent{
		{
			EventName:       "contact_form_submission",
			EventCategory:   domain.CategoryConversion,
			Source:          "google",
			Medium:          "cpc",
			Campaign:        "spring-promo",
			GCLID:           "gclid-1",
			ConversionValue: 1500,
			Timestamp:       reportNow.Add(-time.Hour),
		},
		{
			EventName: "page_view",
			Timestamp: reportNow.Add(-2 * time.Hour),
		},
		{
			EventName: "phone_click",
			Source:    "facebook",
			Medium:    "paid-social",
			Timestamp: reportNow.Add(-3 * time.Hour),
		},
	}

	report := Summarize(events, "30d", reportNow)

	assert.Equal(t, 3, report.TotalLeads)
	assert.Equal(t, float64(1500), report.TotalValue)
	assert.Equal(t, 2, report.PaidLeads)
	assert.Equal(t, 1, report.OrganicLeads)
	assert.Equal(t, report.TotalLeads, report.PaidLeads+report.OrganicLeads)

	assert.Equal(t, 1, report.BySource["google"].Leads)
	assert.Equal(t, 1, report.BySource["google"].Conversions)
	assert.Equal(t, float64(1500), report.BySource["google"].Value)
	assert.Equal(t, 1, report.BySource["direct"].Leads, "empty source groups under direct")
	assert.Equal(t, 1, report.ByMedium["none"].Leads, "empty medium groups under none")
	assert.Equal(t, 1, report.ByMedium["cpc"].Leads)

	assert.Len(t, report.ByCampaign, 1, "events without a campaign are excluded from the campaign rollup")
	assert.Equal(t, 1, report.ByCampaign["spring-promo"].Leads)
}

func TestSummarize_WindowBoundary(t *testing.T) {
	window := 7 * 24 * time.Hour
	events := []domain.AttributionEvent{
		{EventName: "at_boundary", Timestamp: reportNow.Add(-window)},
		{EventName: "outside", Timestamp: reportNow.Add(-window - time.Millisecond)},
		{EventName: "future", Timestamp: reportNow.Add(time.Second)},
	}

	report := Summarize(events, "7d", reportNow)

	assert.Equal(t, 1, report.TotalLeads, "boundary event is included, older and future events are not")
}

func TestSummarize_UnknownPeriodFallsBack(t *testing.T) {
	events := []domain.AttributionEvent{
		{EventName: "recent", Timestamp: reportNow.Add(-10 * 24 * time.Hour)},
	}

	report := Summarize(events, "weekly", reportNow)

	assert.Equal(t, "30d", report.Period)
	assert.Equal(t, 1, report.TotalLeads, "10-day-old event is inside the 30d fallback window")
}

func TestSummarize_Empty(t *testing.T) {
	report := Summarize(nil, "30d", reportNow)

	assert.Equal(t, 0, report.TotalLeads)
	assert.Empty(t, report.BySource)
	assert.Empty(t, report.ByCampaign)
	assert.Empty(t, report.ByMedium)
}

func TestSummarize_Deterministic(t *testing.T) {
	events := []domain.AttributionEvent{
		{EventName: "a", Source: "google", Medium: "cpc", Timestamp: reportNow.Add(-time.Hour)},
		{EventName: "b", Source: "bing", Timestamp: reportNow.Add(-2 * time.Hour)},
	}

	first := Summarize(events, "7d", reportNow)
	second := Summarize(events, "7d", reportNow)

	assert.Equal(t, first, second)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) ListEvents(ctx context.Context) ([]domain.AttributionEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttributionEvent), args.Error(1)
}

func (m *MockEventRepository) AppendEvent(ctx context.Context, event *domain.AttributionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) AppendEvents(ctx context.Context, events []*domain.AttributionEvent) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func TestService_Report_Success(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("ListEvents", mock.Anything).Return([]domain.AttributionEvent{
		{EventName: "lead", Source: "google", Timestamp: reportNow.Add(-time.Hour)},
	}, nil)

	service := NewService(repo, zap.NewNop())
	service.now = func() time.Time { return reportNow }

	report, err := service.Report(context.Background(), "7d")

	assert.NoError(t, err)
	assert.Equal(t, "7d", report.Period)
	assert.Equal(t, 1, report.TotalLeads)
	repo.AssertExpectations(t)
}

func TestService_Report_RepositoryError(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("ListEvents", mock.Anything).Return(nil, errors.New("sheet unavailable"))

	service := NewService(repo, zap.NewNop())

	report, err := service.Report(context.Background(), "7d")

	assert.Error(t, err)
	assert.Nil(t, report)
}
