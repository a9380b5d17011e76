package domain

import "time"

// CRMContact is the external contact entity as the CRM reports it. The sync
// engine treats it as a foreign read/write target and never caches it beyond
// the fields folded into CustomerRecord.
type CRMContact struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Tags       []string
	Source     string
	DateAdded  time.Time
}
