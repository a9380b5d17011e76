package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

const (
	customersTable = "customers"
	eventsTable    = "analytics_events"
)

// Repository implements CustomerRepository and EventRepository on top of a
// Google Sheets spreadsheet. There is no row-level atomicity in the
// underlying transport: an update is a full-row overwrite and the last
// concurrent write wins.
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new Sheets repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// ListCustomers reads the full customers table
func (r *Repository) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	rows, err := r.readTable(ctx, customersTable, len(customerColumns))
	if err != nil {
		return nil, err
	}

	records := make([]domain.CustomerRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, unmarshalCustomerRow(row, i+2))
	}
	return records, nil
}

// AppendCustomer appends one customer row
func (r *Repository) AppendCustomer(ctx context.Context, record *domain.CustomerRecord) error {
	if err := r.appendRows(ctx, customersTable, len(customerColumns), [][]interface{}{marshalCustomerRow(record)}); err != nil {
		return fmt.Errorf("failed to append customer row: %w", err)
	}

	r.log.Info("Customer row appended",
		zap.String("customer_id", record.ID),
		zap.String("crm_contact_id", record.CRMContactID))
	return nil
}

// UpdateCustomer overwrites the customer row at the given sheet row index
func (r *Repository) UpdateCustomer(ctx context.Context, rowIndex int, record *domain.CustomerRecord) error {
	if rowIndex < 2 {
		return fmt.Errorf("invalid customer row index %d", rowIndex)
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", customersTable, rowIndex, columnLetter(len(customerColumns)), rowIndex)
	vr := &sheets.ValueRange{Values: [][]interface{}{marshalCustomerRow(record)}}

	_, err := r.client.Service().Spreadsheets.Values.
		Update(r.client.SpreadsheetID(), rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update customer row %d: %w", rowIndex, err)
	}

	r.log.Info("Customer row updated",
		zap.String("customer_id", record.ID),
		zap.Int("row_index", rowIndex))
	return nil
}

// ListEvents reads the full analytics_events table
func (r *Repository) ListEvents(ctx context.Context) ([]domain.AttributionEvent, error) {
	rows, err := r.readTable(ctx, eventsTable, len(eventColumns))
	if err != nil {
		return nil, err
	}

	events := make([]domain.AttributionEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, unmarshalEventRow(row))
	}
	return events, nil
}

// AppendEvent appends one event row
func (r *Repository) AppendEvent(ctx context.Context, event *domain.AttributionEvent) error {
	_, err := r.AppendEvents(ctx, []*domain.AttributionEvent{event})
	return err
}

// AppendEvents appends a batch of event rows in a single call
func (r *Repository) AppendEvents(ctx context.Context, events []*domain.AttributionEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	values := make([][]interface{}, 0, len(events))
	for _, event := range events {
		values = append(values, marshalEventRow(event))
	}

	if err := r.appendRows(ctx, eventsTable, len(eventColumns), values); err != nil {
		return 0, fmt.Errorf("failed to append event rows: %w", err)
	}

	return len(events), nil
}

func (r *Repository) readTable(ctx context.Context, table string, cols int) ([][]interface{}, error) {
	rng := fmt.Sprintf("%s!A2:%s", table, columnLetter(cols))

	resp, err := r.client.Service().Spreadsheets.Values.
		Get(r.client.SpreadsheetID(), rng).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s table: %w", table, err)
	}

	return resp.Values, nil
}

func (r *Repository) appendRows(ctx context.Context, table string, cols int, values [][]interface{}) error {
	rng := fmt.Sprintf("%s!A:%s", table, columnLetter(cols))
	vr := &sheets.ValueRange{Values: values}

	_, err := r.client.Service().Spreadsheets.Values.
		Append(r.client.SpreadsheetID(), rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
