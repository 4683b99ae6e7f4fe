package underlyings

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindIndex  Kind = "index"
	KindEquity Kind = "equity"
	KindEtf    Kind = "etf"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindIndex, KindEquity, KindEtf:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid underlying kind: %s", s)
	}
	return k, nil
}

// DefaultExchange is used when an underlying is registered without one.
const DefaultExchange = "NSE"

// Underlying is a symbol the dashboard tracks option chains for
// (table `underlyings`, see internal/infrastructure/underlyings/schema.sql).
type Underlying struct {
	UID       uuid.UUID `json:"uid"`
	Symbol    string    `json:"symbol"`
	Exchange  string    `json:"exchange"`
	Kind      Kind      `json:"kind"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScanTicker renders the EXCHANGE:SYMBOL form used by the options scanner.
func (u Underlying) ScanTicker() string {
	exchange := u.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}
	return exchange + ":" + u.Symbol
}

// Normalize trims and upper-cases symbol and exchange in place.
func (u *Underlying) Normalize() {
	u.Symbol = strings.ToUpper(strings.TrimSpace(u.Symbol))
	u.Exchange = strings.ToUpper(strings.TrimSpace(u.Exchange))
	if u.Exchange == "" {
		u.Exchange = DefaultExchange
	}
}
