package repository

import (
	"context"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// CustomerRepository defines the record store operations for the "customers"
// table. The store has no query language: every read returns the full table,
// and an update is a full-row overwrite keyed by sheet row index.
type CustomerRepository interface {
	// ListCustomers returns every customer row, each carrying its RowIndex
	ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error)

	// AppendCustomer appends a new row to the customers table
	AppendCustomer(ctx context.Context, record *domain.CustomerRecord) error

	// UpdateCustomer overwrites the row at the given 1-based sheet row index
	UpdateCustomer(ctx context.Context, rowIndex int, record *domain.CustomerRecord) error
}

// EventRepository defines the record store operations for the
// "analytics_events" table. Events are append-only.
type EventRepository interface {
	// ListEvents returns every attribution event row
	ListEvents(ctx context.Context) ([]domain.AttributionEvent, error)

	// AppendEvent appends a single event row
	AppendEvent(ctx context.Context, event *domain.AttributionEvent) error

	// AppendEvents appends a batch of event rows and returns how many
	// were written
	AppendEvents(ctx context.Context, events []*domain.AttributionEvent) (int, error)
}
