package sync

import (
	"context"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
)

// CustomerService defines the sync engine operations exposed to the API
// surface
type CustomerService interface {
	CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*domain.CustomerRecord, *domain.DeliveryResult, error)
	UpdateCustomer(ctx context.Context, rowIndex int, patch *dto.UpdateCustomerRequest) (*domain.CustomerRecord, error)
	FullPullSync(ctx context.Context) (*dto.SyncResponse, error)
}

// ContactReconciler applies a single remote contact to the record store
// using the same match-then-merge-or-create policy as the full pull
type ContactReconciler interface {
	ReconcileContact(ctx context.Context, contact *domain.CRMContact) (*ReconcileResult, error)
}
