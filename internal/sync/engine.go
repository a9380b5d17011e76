package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/crm"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/repository"
)

// ReconcileResult reports what a single-contact reconcile did
type ReconcileResult struct {
	Created  bool
	RowIndex int

	// AmbiguousRows are local duplicate rows that also matched the contact
	// but lost the earliest-created tie-break. They are left untouched.
	AmbiguousRows []int
}

// Engine orchestrates create, pull, and push operations between the record
// store and the CRM gateway, and owns the matching/dedup policy.
type Engine struct {
	customers repository.CustomerRepository
	events    repository.EventRepository
	gateway   crm.Gateway
	log       *zap.Logger
}

// NewEngine creates a new sync engine
func NewEngine(customers repository.CustomerRepository, events repository.EventRepository, gateway crm.Gateway, log *zap.Logger) *Engine {
	return &Engine{
		customers: customers,
		events:    events,
		gateway:   gateway,
		log:       log,
	}
}

// CreateCustomer handles a customer intake. The record store append is the
// durability guarantee; CRM delivery is best-effort and never fails the
// call. The conversion attribution event is appended alongside the row.
func (e *Engine) CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*domain.CustomerRecord, *domain.DeliveryResult, error) {
	now := time.Now().UTC()
	tags := DeriveTags(req)

	delivery, err := e.gateway.CreateContact(ctx, &crm.ContactRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.Zip,
		Source:     req.Source,
		Tags:       tags,
	})
	if err != nil {
		e.log.Warn("CRM delivery failed entirely, keeping customer local-only",
			zap.String("email", req.Email),
			zap.Error(err))
		delivery = &domain.DeliveryResult{}
	}

	if delivery.ExternalID != "" {
		if note := buildAttributionNote(req); note != "" {
			if err := e.gateway.AddNote(ctx, delivery.ExternalID, note); err != nil {
				e.log.Warn("Failed to attach attribution note",
					zap.String("contact_id", delivery.ExternalID),
					zap.Error(err))
			}
		}
	}

	record := &domain.CustomerRecord{
		ID:                 uuid.NewString(),
		CRMContactID:       delivery.ExternalID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Zip:                req.Zip,
		Source:             req.Source,
		LeadScore:          scoreLead(req),
		LeadTemperature:    domain.TemperatureNew,
		Tags:               tags,
		ServicesInterested: req.ServicesInterested,
		EstimatedValue:     req.EstimatedValue,
		Status:             "active",
		Attribution: domain.Attribution{
			GCLID:          req.GCLID,
			FBCLID:         req.FBCLID,
			UTMSource:      req.UTMSource,
			UTMMedium:      req.UTMMedium,
			UTMCampaign:    req.UTMCampaign,
			UTMTerm:        req.UTMTerm,
			UTMContent:     req.UTMContent,
			GAClientID:     req.GAClientID,
			FirstVisitPage: req.FirstVisitPage,
			ConversionPage: req.ConversionPage,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if delivery.APIOK {
		record.LastSyncedAt = now
	}

	if err := e.customers.AppendCustomer(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("failed to append customer row: %w", err)
	}

	e.log.Info("Customer created",
		zap.String("customer_id", record.ID),
		zap.String("crm_contact_id", record.CRMContactID),
		zap.Bool("webhook_ok", delivery.WebhookOK),
		zap.Bool("api_ok", delivery.APIOK))

	if err := e.events.AppendEvent(ctx, conversionEvent(record, req, now)); err != nil {
		e.log.Warn("Failed to append conversion event",
			zap.String("customer_id", record.ID),
			zap.Error(err))
	}

	return record, delivery, nil
}

// UpdateCustomer merges an operator patch onto an existing row and writes it
// back, then pushes a restricted field subset to the CRM when the row is
// linked and a credential exists. Push failures are logged only.
func (e *Engine) UpdateCustomer(ctx context.Context, rowIndex int, patch *dto.UpdateCustomerRequest) (*domain.CustomerRecord, error) {
	customers, err := e.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	var record *domain.CustomerRecord
	for i := range customers {
		if customers[i].RowIndex == rowIndex {
			record = &customers[i]
			break
		}
	}
	if record == nil {
		return nil, fmt.Errorf("no customer row at index %d", rowIndex)
	}

	applyPatch(record, patch)
	now := time.Now().UTC()
	record.UpdatedAt = now
	record.LastSyncedAt = now

	if err := e.customers.UpdateCustomer(ctx, rowIndex, record); err != nil {
		return nil, fmt.Errorf("failed to write customer row %d: %w", rowIndex, err)
	}

	if record.CRMContactID != "" && e.gateway.HasCredential() {
		push := &crm.ContactRequest{
			FirstName:  record.FirstName,
			LastName:   record.LastName,
			Email:      record.Email,
			Phone:      record.Phone,
			Address:    record.Address,
			City:       record.City,
			State:      record.State,
			PostalCode: record.Zip,
			Tags:       record.Tags,
		}
		if err := e.gateway.UpdateContact(ctx, record.CRMContactID, push); err != nil {
			e.log.Warn("Best-effort CRM push failed",
				zap.String("customer_id", record.ID),
				zap.String("crm_contact_id", record.CRMContactID),
				zap.Error(err))
		}
	}

	return record, nil
}

// FullPullSync pages through every CRM contact and reconciles each one
// against the record store. Pagination is strictly sequential: newly created
// rows join the working set so later pages dedup against them. A page fetch
// failure aborts pagination and returns partial counts with the error.
func (e *Engine) FullPullSync(ctx context.Context) (*dto.SyncResponse, error) {
	if !e.gateway.HasCredential() {
		return nil, crm.ErrNoCredential
	}

	working, err := e.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	result := &dto.SyncResponse{}

	for page := 1; ; page++ {
		contacts, hasMore, err := e.gateway.ListContacts(ctx, page, "")
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", page, err))
			break
		}

		for i := range contacts {
			created, _, _, err := e.applyContact(ctx, &working, &contacts[i])
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("contact %s: %v", contacts[i].ID, err))
				continue
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if !hasMore {
			break
		}
	}

	e.log.Info("Full pull sync finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

// ReconcileContact applies the match-then-merge-or-create policy for one
// remote contact. Replaying the same contact converges to the same stored
// state.
func (e *Engine) ReconcileContact(ctx context.Context, contact *domain.CRMContact) (*ReconcileResult, error) {
	working, err := e.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	created, rowIndex, ambiguous, err := e.applyContact(ctx, &working, contact)
	if err != nil {
		return nil, err
	}

	return &ReconcileResult{
		Created:       created,
		RowIndex:      rowIndex,
		AmbiguousRows: ambiguous,
	}, nil
}

func (e *Engine) applyContact(ctx context.Context, working *[]domain.CustomerRecord, contact *domain.CRMContact) (created bool, rowIndex int, ambiguous []int, err error) {
	now := time.Now().UTC()
	m := matchContact(*working, contact)

	if len(m.AmbiguousRows) > 0 {
		e.log.Warn("Multiple local rows match remote contact, merging into earliest-created row",
			zap.String("contact_id", contact.ID),
			zap.Ints("ambiguous_rows", m.AmbiguousRows))
	}

	if m.Index >= 0 {
		merged := mergeRemoteContact((*working)[m.Index], contact, now)
		if err := e.customers.UpdateCustomer(ctx, merged.RowIndex, &merged); err != nil {
			return false, 0, m.AmbiguousRows, fmt.Errorf("failed to write merged row %d: %w", merged.RowIndex, err)
		}
		(*working)[m.Index] = merged
		return false, merged.RowIndex, m.AmbiguousRows, nil
	}

	record := recordFromContact(contact, uuid.NewString(), now)
	if err := e.customers.AppendCustomer(ctx, &record); err != nil {
		return false, 0, nil, fmt.Errorf("failed to append imported row: %w", err)
	}
	if record.RowIndex == 0 {
		// The sheets append API does not report the landed row; appends go
		// to the end of a contiguous table.
		record.RowIndex = len(*working) + 2
	}
	*working = append(*working, record)
	return true, record.RowIndex, nil, nil
}

func applyPatch(record *domain.CustomerRecord, patch *dto.UpdateCustomerRequest) {
	if patch.FirstName != nil {
		record.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		record.LastName = *patch.LastName
	}
	if patch.Email != nil {
		record.Email = *patch.Email
	}
	if patch.Phone != nil {
		record.Phone = *patch.Phone
	}
	if patch.Address != nil {
		record.Address = *patch.Address
	}
	if patch.City != nil {
		record.City = *patch.City
	}
	if patch.State != nil {
		record.State = *patch.State
	}
	if patch.Zip != nil {
		record.Zip = *patch.Zip
	}
	if patch.Source != nil {
		record.Source = *patch.Source
	}
	if patch.LeadScore != nil {
		record.LeadScore = *patch.LeadScore
	}
	if patch.LeadTemperature != nil {
		record.LeadTemperature = *patch.LeadTemperature
	}
	if patch.Tags != nil {
		record.Tags = *patch.Tags
	}
	if patch.ServicesInterested != nil {
		record.ServicesInterested = *patch.ServicesInterested
	}
	if patch.EstimatedValue != nil {
		record.EstimatedValue = *patch.EstimatedValue
	}
	if patch.Status != nil {
		record.Status = *patch.Status
	}
}

// buildAttributionNote renders the attribution snapshot as a CRM note.
// Returns "" when the submission carried no click id or UTM field.
func buildAttributionNote(req *dto.CreateCustomerRequest) string {
	var lines []string
	appendLine := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}

	appendLine("UTM Source", req.UTMSource)
	appendLine("UTM Medium", req.UTMMedium)
	appendLine("UTM Campaign", req.UTMCampaign)
	appendLine("UTM Term", req.UTMTerm)
	appendLine("UTM Content", req.UTMContent)
	appendLine("GCLID", req.GCLID)
	appendLine("FBCLID", req.FBCLID)

	if len(lines) == 0 {
		return ""
	}

	appendLine("GA Client ID", req.GAClientID)
	appendLine("First Visit", req.FirstVisitPage)
	appendLine("Conversion Page", req.ConversionPage)
	return "Attribution\n" + strings.Join(lines, "\n")
}

func conversionEvent(record *domain.CustomerRecord, req *dto.CreateCustomerRequest, now time.Time) *domain.AttributionEvent {
	source := req.UTMSource
	if source == "" {
		source = req.Source
	}

	return &domain.AttributionEvent{
		ID:              uuid.NewString(),
		CustomerID:      record.ID,
		CRMContactID:    record.CRMContactID,
		EventName:       "contact_form_submission",
		EventCategory:   domain.CategoryConversion,
		Source:          source,
		Medium:          req.UTMMedium,
		Campaign:        req.UTMCampaign,
		GCLID:           req.GCLID,
		FBCLID:          req.FBCLID,
		UTMTerm:         req.UTMTerm,
		UTMContent:      req.UTMContent,
		GAClientID:      req.GAClientID,
		SessionID:       req.SessionID,
		Referrer:        req.Referrer,
		PagePath:        req.ConversionPage,
		DeviceType:      req.DeviceType,
		City:            req.City,
		ConversionValue: req.EstimatedValue,
		Timestamp:       now,
	}
}
