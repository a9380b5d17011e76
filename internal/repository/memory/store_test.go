package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

func TestStore_AppendAssignsSheetRowIndexes(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := &domain.CustomerRecord{ID: "a"}
	second := &domain.CustomerRecord{ID: "b"}

	assert.NoError(t, store.AppendCustomer(ctx, first))
	assert.NoError(t, store.AppendCustomer(ctx, second))

	assert.Equal(t, 2, first.RowIndex, "data rows start below the header row")
	assert.Equal(t, 3, second.RowIndex)

	customers, err := store.ListCustomers(ctx)
	assert.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestStore_UpdateCustomer(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	record := &domain.CustomerRecord{ID: "a", FirstName: "Dana"}
	_ = store.AppendCustomer(ctx, record)

	record.FirstName = "Updated"
	assert.NoError(t, store.UpdateCustomer(ctx, 2, record))

	customers, _ := store.ListCustomers(ctx)
	assert.Equal(t, "Updated", customers[0].FirstName)
}

func TestStore_UpdateCustomer_UnknownRow(t *testing.T) {
	store := NewStore()

	err := store.UpdateCustomer(context.Background(), 9, &domain.CustomerRecord{ID: "a"})

	assert.Error(t, err)
}

func TestStore_AppendEvents(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	count, err := store.AppendEvents(ctx, []*domain.AttributionEvent{
		{ID: "evt-1", EventName: "page_view"},
		{ID: "evt-2", EventName: "phone_click"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	events, err := store.ListEvents(ctx)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestStore_ListReturnsCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.AppendCustomer(ctx, &domain.CustomerRecord{ID: "a", FirstName: "Dana"})

	customers, _ := store.ListCustomers(ctx)
	customers[0].FirstName = "Mutated"

	again, _ := store.ListCustomers(ctx)
	assert.Equal(t, "Dana", again[0].FirstName)
}

func TestNewFallbackStore_SeedsReadableData(t *testing.T) {
	store := NewFallbackStore()
	ctx := context.Background()

	customers, err := store.ListCustomers(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, customers)
	assert.Equal(t, 2, customers[0].RowIndex)

	events, err := store.ListEvents(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, events)
}
