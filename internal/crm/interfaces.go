package crm

import (
	"context"
	"errors"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// ErrNoCredential is returned by read operations when no API credential is
// configured. Reads have no safe degraded behavior; writes degrade instead.
var ErrNoCredential = errors.New("crm: no api credential configured")

// ContactRequest carries the contact fields pushed to the CRM on create
// and update
type ContactRequest struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Source     string
	Tags       []string

	// Webhook-path extras
	Website      string
	CustomFields map[string]string
}

// Gateway is the dual-path client to the external contact system. All write
// methods are best-effort and report success when no credential is
// configured; read methods require one.
type Gateway interface {
	// CreateContact attempts the webhook path first and the authenticated
	// API when a credential is configured. The returned DeliveryResult
	// records which paths succeeded; a failed path never fails the call.
	CreateContact(ctx context.Context, req *ContactRequest) (*domain.DeliveryResult, error)

	// UpdateContact pushes contact fields to an existing CRM contact
	UpdateContact(ctx context.Context, contactID string, req *ContactRequest) error

	// GetContact fetches one contact by id
	GetContact(ctx context.Context, contactID string) (*domain.CRMContact, error)

	// ListContacts fetches one page of contacts and reports whether more
	// pages remain
	ListContacts(ctx context.Context, page int, query string) ([]domain.CRMContact, bool, error)

	// AddNote attaches a note to a contact
	AddNote(ctx context.Context, contactID, body string) error

	// AddTags adds tags to a contact
	AddTags(ctx context.Context, contactID string, tags []string) error

	// HasCredential reports whether the authenticated API path is available
	HasCredential() bool
}
