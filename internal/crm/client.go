package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/config"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// listPageSize is the page size requested from the contacts list endpoint.
// A full page signals that more pages may remain.
const listPageSize = 100

// Client implements Gateway against the CRM's webhook and REST surfaces
type Client struct {
	httpClient *http.Client
	cfg        *config.CRM
	log        *zap.Logger
}

// NewClient creates a new CRM client
func NewClient(cfg *config.CRM, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if cfg.APIKey == "" {
		log.Warn("No CRM API credential configured, writes degrade to webhook-only delivery")
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		log:        log,
	}
}

// HasCredential reports whether the authenticated API path is available
func (c *Client) HasCredential() bool {
	return c.cfg.APIKey != ""
}

// CreateContact delivers a new contact over both paths. The webhook is
// always attempted and its failure is only logged; the API call runs when a
// credential exists and yields the external contact id. Neither path failing
// fails the call: the record store write upstream is the durability
// guarantee.
func (c *Client) CreateContact(ctx context.Context, req *ContactRequest) (*domain.DeliveryResult, error) {
	result := &domain.DeliveryResult{}

	if c.cfg.WebhookURL != "" {
		if err := c.postWebhook(ctx, req); err != nil {
			c.log.Warn("CRM webhook delivery failed",
				zap.String("email", req.Email),
				zap.Error(err))
		} else {
			result.WebhookOK = true
		}
	}

	if !c.HasCredential() {
		return result, nil
	}

	payload := c.contactPayload(req)
	payload["locationId"] = c.cfg.LocationID

	var env contactEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/contacts/", payload, &env); err != nil {
		c.log.Warn("CRM API create failed, accepting webhook-only delivery",
			zap.String("email", req.Email),
			zap.Bool("webhook_ok", result.WebhookOK),
			zap.Error(err))
		return result, nil
	}

	result.APIOK = true
	result.ExternalID = env.Contact.ID

	c.log.Info("Contact created in CRM",
		zap.String("contact_id", result.ExternalID),
		zap.Bool("webhook_ok", result.WebhookOK))
	return result, nil
}

// UpdateContact pushes fields to an existing contact. Without a credential
// this is a silent no-op: the record store already holds the data.
func (c *Client) UpdateContact(ctx context.Context, contactID string, req *ContactRequest) error {
	if !c.HasCredential() {
		return nil
	}

	path := "/contacts/" + url.PathEscape(contactID)
	if err := c.doJSON(ctx, http.MethodPut, path, c.contactPayload(req), nil); err != nil {
		return fmt.Errorf("failed to update contact %s: %w", contactID, err)
	}
	return nil
}

// GetContact fetches one contact by id
func (c *Client) GetContact(ctx context.Context, contactID string) (*domain.CRMContact, error) {
	if !c.HasCredential() {
		return nil, ErrNoCredential
	}

	path := "/contacts/" + url.PathEscape(contactID)
	var env contactEnvelope
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch contact %s: %w", contactID, err)
	}

	contact := env.Contact.toDomain()
	return &contact, nil
}

// ListContacts fetches one page of contacts
func (c *Client) ListContacts(ctx context.Context, page int, query string) ([]domain.CRMContact, bool, error) {
	if !c.HasCredential() {
		return nil, false, ErrNoCredential
	}

	params := url.Values{}
	params.Set("locationId", c.cfg.LocationID)
	params.Set("limit", strconv.Itoa(listPageSize))
	params.Set("page", strconv.Itoa(page))
	if query != "" {
		params.Set("query", query)
	}

	var env listEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/contacts/?"+params.Encode(), nil, &env); err != nil {
		return nil, false, fmt.Errorf("failed to list contacts page %d: %w", page, err)
	}

	contacts := make([]domain.CRMContact, 0, len(env.Contacts))
	for _, rc := range env.Contacts {
		contacts = append(contacts, rc.toDomain())
	}

	hasMore := len(env.Contacts) == listPageSize
	return contacts, hasMore, nil
}

// AddNote attaches a note to a contact. No-op without a credential.
func (c *Client) AddNote(ctx context.Context, contactID, body string) error {
	if !c.HasCredential() {
		return nil
	}

	path := "/contacts/" + url.PathEscape(contactID) + "/notes"
	payload := map[string]interface{}{"body": body}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("failed to add note to contact %s: %w", contactID, err)
	}
	return nil
}

// AddTags adds tags to a contact. No-op without a credential.
func (c *Client) AddTags(ctx context.Context, contactID string, tags []string) error {
	if !c.HasCredential() || len(tags) == 0 {
		return nil
	}

	path := "/contacts/" + url.PathEscape(contactID) + "/tags"
	payload := map[string]interface{}{"tags": tags}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("failed to add tags to contact %s: %w", contactID, err)
	}
	return nil
}

// postWebhook fires the unauthenticated form webhook. Only the HTTP status
// class determines success; the response body is not trusted.
func (c *Client) postWebhook(ctx context.Context, req *ContactRequest) error {
	payload := map[string]interface{}{
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
		"name":        req.FirstName + " " + req.LastName,
		"email":       req.Email,
		"phone":       req.Phone,
		"source":      req.Source,
		"tags":        joinTags(req.Tags),
		"website":     req.Website,
		"submittedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if len(req.CustomFields) > 0 {
		payload["customFields"] = req.CustomFields
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Version", c.cfg.APIVersion)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("crm api returned status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) contactPayload(req *ContactRequest) map[string]interface{} {
	return map[string]interface{}{
		"firstName":  req.FirstName,
		"lastName":   req.LastName,
		"email":      req.Email,
		"phone":      req.Phone,
		"address1":   req.Address,
		"city":       req.City,
		"state":      req.State,
		"postalCode": req.PostalCode,
		"source":     req.Source,
		"tags":       req.Tags,
	}
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// Wire types for the CRM REST surface

type wireContact struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address1   string   `json:"address1"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Tags       []string `json:"tags"`
	Source     string   `json:"source"`
	DateAdded  string   `json:"dateAdded"`
}

func (w wireContact) toDomain() domain.CRMContact {
	contact := domain.CRMContact{
		ID:         w.ID,
		FirstName:  w.FirstName,
		LastName:   w.LastName,
		Email:      w.Email,
		Phone:      w.Phone,
		Address:    w.Address1,
		City:       w.City,
		State:      w.State,
		PostalCode: w.PostalCode,
		Tags:       w.Tags,
		Source:     w.Source,
	}
	if t, err := time.Parse(time.RFC3339, w.DateAdded); err == nil {
		contact.DateAdded = t
	}
	return contact
}

type contactEnvelope struct {
	Contact wireContact `json:"contact"`
}

type listEnvelope struct {
	Contacts []wireContact `json:"contacts"`
	Meta     struct {
		Total int `json:"total"`
	} `json:"meta"`
}
