package sync

import (
	"strings"
	"time"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// matchResult identifies which local row a remote contact reconciles into.
// Index is -1 when no row matches. AmbiguousRows carries the sheet rows of
// duplicate candidates that also matched but lost the tie-break; they are
// left untouched and surfaced for review.
type matchResult struct {
	Index         int
	AmbiguousRows []int
}

// matchContact finds the local row for a remote contact. Match order:
// exact crmContactId equality first, then case-insensitive email. The id
// pass winning means an email-based candidate on a different row is not
// consulted for that contact. When several rows match in the same pass, the
// earliest-created row wins (lowest row index on equal timestamps).
func matchContact(customers []domain.CustomerRecord, contact *domain.CRMContact) matchResult {
	var byID []int
	for i := range customers {
		if customers[i].CRMContactID != "" && customers[i].CRMContactID == contact.ID {
			byID = append(byID, i)
		}
	}
	if len(byID) > 0 {
		return pickWinner(customers, byID)
	}

	if contact.Email == "" {
		return matchResult{Index: -1}
	}

	var byEmail []int
	for i := range customers {
		if customers[i].Email != "" && strings.EqualFold(customers[i].Email, contact.Email) {
			byEmail = append(byEmail, i)
		}
	}
	if len(byEmail) > 0 {
		return pickWinner(customers, byEmail)
	}

	return matchResult{Index: -1}
}

func pickWinner(customers []domain.CustomerRecord, candidates []int) matchResult {
	winner := candidates[0]
	for _, i := range candidates[1:] {
		if earlier(customers[i], customers[winner]) {
			winner = i
		}
	}

	var ambiguous []int
	for _, i := range candidates {
		if i != winner {
			ambiguous = append(ambiguous, customers[i].RowIndex)
		}
	}
	return matchResult{Index: winner, AmbiguousRows: ambiguous}
}

func earlier(a, b domain.CustomerRecord) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.RowIndex < b.RowIndex
}

// mergeRemoteContact folds a remote contact into an existing row. Pure: the
// remote value wins only when non-empty, tags are unioned, and the local id
// and creation attribution snapshot are never overwritten.
func mergeRemoteContact(existing domain.CustomerRecord, contact *domain.CRMContact, now time.Time) domain.CustomerRecord {
	merged := existing

	merged.CRMContactID = contact.ID
	setNonEmpty(&merged.FirstName, contact.FirstName)
	setNonEmpty(&merged.LastName, contact.LastName)
	setNonEmpty(&merged.Email, contact.Email)
	setNonEmpty(&merged.Phone, contact.Phone)
	setNonEmpty(&merged.Address, contact.Address)
	setNonEmpty(&merged.City, contact.City)
	setNonEmpty(&merged.State, contact.State)
	setNonEmpty(&merged.Zip, contact.PostalCode)
	setNonEmpty(&merged.Source, contact.Source)
	merged.Tags = unionTags(existing.Tags, contact.Tags)

	merged.UpdatedAt = now
	merged.LastSyncedAt = now
	return merged
}

// recordFromContact builds a new local row for a remote contact that matched
// nothing. Imported rows are classified accordingly.
func recordFromContact(contact *domain.CRMContact, id string, now time.Time) domain.CustomerRecord {
	source := contact.Source
	if source == "" {
		source = "crm-import"
	}

	createdAt := contact.DateAdded
	if createdAt.IsZero() {
		createdAt = now
	}

	return domain.CustomerRecord{
		ID:              id,
		CRMContactID:    contact.ID,
		FirstName:       contact.FirstName,
		LastName:        contact.LastName,
		Email:           contact.Email,
		Phone:           contact.Phone,
		Address:         contact.Address,
		City:            contact.City,
		State:           contact.State,
		Zip:             contact.PostalCode,
		Source:          source,
		LeadTemperature: domain.TemperatureImported,
		Tags:            unionTags(nil, contact.Tags),
		Status:          "active",
		CreatedAt:       createdAt,
		UpdatedAt:       now,
		LastSyncedAt:    now,
	}
}

func setNonEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// unionTags merges two tag sets preserving first-seen order
func unionTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	var out []string
	for _, t := range existing {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range incoming {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
