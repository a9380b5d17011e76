package consumer

import (
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into
// attribution events
type MessageParser interface {
	Parse(body []byte) (*domain.AttributionEvent, error)
}
