package webhook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/crm"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
	syncengine "github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/sync"
)

// InboundHandler processes inbound CRM webhook notifications
type InboundHandler interface {
	Handle(ctx context.Context, payload *dto.CRMWebhookPayload) error
}

// Ingester applies inbound CRM notifications to the record store. The
// payload itself is treated as a trigger, not a trusted data source: only
// the contact id is used, and the full contact is re-fetched over the
// authenticated API before reconciling.
type Ingester struct {
	reconciler syncengine.ContactReconciler
	gateway    crm.Gateway
	locationID string
	log        *zap.Logger
}

// NewIngester creates a new webhook ingester scoped to one tenant
func NewIngester(reconciler syncengine.ContactReconciler, gateway crm.Gateway, locationID string, log *zap.Logger) *Ingester {
	return &Ingester{
		reconciler: reconciler,
		gateway:    gateway,
		locationID: locationID,
		log:        log,
	}
}

// Handle processes one notification. The location check is the sole
// authorization on this endpoint (there is no signature verification), so a
// mismatch is dropped without surfacing anything to the caller. Replaying
// the same payload converges to the same stored state.
func (i *Ingester) Handle(ctx context.Context, payload *dto.CRMWebhookPayload) error {
	if payload.LocationID != i.locationID {
		i.log.Debug("Dropping webhook for unknown location",
			zap.String("location_id", payload.LocationID),
			zap.String("type", payload.Type))
		return nil
	}

	if payload.ContactID == "" {
		i.log.Warn("Webhook payload carries no contact id",
			zap.String("type", payload.Type))
		return nil
	}

	contact, err := i.gateway.GetContact(ctx, payload.ContactID)
	if err != nil {
		return fmt.Errorf("failed to refetch contact %s: %w", payload.ContactID, err)
	}

	result, err := i.reconciler.ReconcileContact(ctx, contact)
	if err != nil {
		return fmt.Errorf("failed to reconcile contact %s: %w", payload.ContactID, err)
	}

	i.log.Info("Webhook contact reconciled",
		zap.String("contact_id", payload.ContactID),
		zap.String("type", payload.Type),
		zap.Bool("created", result.Created),
		zap.Int("row_index", result.RowIndex))
	return nil
}
