package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// Store is an in-memory record store. It backs the service when no
// spreadsheet is configured (reads work, writes are process-local) and
// doubles as the test store. Row indexing mirrors the sheet layout: the
// first data row is row 2.
type Store struct {
	mu        sync.Mutex
	customers []domain.CustomerRecord
	events    []domain.AttributionEvent
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{}
}

// NewFallbackStore creates a store pre-loaded with a small static dataset so
// that read surfaces stay demonstrable without a spreadsheet configured.
func NewFallbackStore() *Store {
	s := NewStore()
	for i := range fallbackCustomers {
		rec := fallbackCustomers[i]
		rec.RowIndex = i + 2
		s.customers = append(s.customers, rec)
	}
	s.events = append(s.events, fallbackEvents...)
	return s
}

// ListCustomers returns a copy of every customer row
func (s *Store) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CustomerRecord, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

// AppendCustomer appends a customer row and assigns its row index
func (s *Store) AppendCustomer(ctx context.Context, record *domain.CustomerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.RowIndex = len(s.customers) + 2
	s.customers = append(s.customers, *record)
	return nil
}

// UpdateCustomer overwrites the row at the given sheet row index
func (s *Store) UpdateCustomer(ctx context.Context, rowIndex int, record *domain.CustomerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := rowIndex - 2
	if i < 0 || i >= len(s.customers) {
		return fmt.Errorf("no customer row at index %d", rowIndex)
	}

	record.RowIndex = rowIndex
	s.customers[i] = *record
	return nil
}

// ListEvents returns a copy of every event row
func (s *Store) ListEvents(ctx context.Context) ([]domain.AttributionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.AttributionEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

// AppendEvent appends a single event row
func (s *Store) AppendEvent(ctx context.Context, event *domain.AttributionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, *event)
	return nil
}

// AppendEvents appends a batch of event rows
func (s *Store) AppendEvents(ctx context.Context, events []*domain.AttributionEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		s.events = append(s.events, *event)
	}
	return len(events), nil
}
