package options

// Side identifies the call or put leg of a contract as reported upstream.
type Side string

const (
	SideCall Side = "call"
	SidePut  Side = "put"
)

// IsKnown reports whether the side is one of the two supported option types.
func (s Side) IsKnown() bool {
	switch s {
	case SideCall, SidePut:
		return true
	default:
		return false
	}
}

// OptionQuote is one side of one contract at a given strike and expiry.
// Nil numeric fields mean the value was absent or not a finite number upstream.
type OptionQuote struct {
	Side       Side     `json:"side"`
	Strike     float64  `json:"strike"`
	Expiration string   `json:"expiration"`
	Bid        *float64 `json:"bid"`
	Ask        *float64 `json:"ask"`
	Mid        *float64 `json:"mid"`
	Last       *float64 `json:"last"`
	IV         *float64 `json:"iv"`
	Delta      *float64 `json:"delta"`
	Gamma      *float64 `json:"gamma"`
	Theta      *float64 `json:"theta"`
	Vega       *float64 `json:"vega"`
	Rho        *float64 `json:"rho"`
	TheoPrice  *float64 `json:"theoPrice"`
	Spread     *float64 `json:"spread"`
	OI         *float64 `json:"oi"`
	Volume     *float64 `json:"volume"`
	Name       string   `json:"name"`
}

// OptionStrikeRow pairs the call and put quotes of one strike within one expiry.
// Either side may be missing when the feed does not carry it.
type OptionStrikeRow struct {
	Strike     float64      `json:"strike"`
	Expiration string       `json:"expiration"`
	Call       *OptionQuote `json:"call,omitempty"`
	Put        *OptionQuote `json:"put,omitempty"`
}
