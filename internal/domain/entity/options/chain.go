package options

// OptionChain is the chain of one symbol at the selected expiry.
// Strikes are ascending; Expiries lists every expiry seen in the raw feed.
type OptionChain struct {
	Symbol   string            `json:"symbol"`
	Expiry   string            `json:"expiry,omitempty"`
	Strikes  []OptionStrikeRow `json:"strikes"`
	Expiries []string          `json:"expiries"`

	// UnknownSides holds quotes whose option type was neither call nor put.
	UnknownSides []OptionQuote `json:"unknownSides,omitempty"`
}

// IVStats aggregates implied volatility (in percent) across a chain.
type IVStats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ChainSummary is the derived, read-only analytics over one chain's strikes.
type ChainSummary struct {
	ATMStrike      *float64 `json:"atmStrike"`
	AvgSpread      *float64 `json:"avgSpread"`
	IVStats        *IVStats `json:"ivStats"`
	PCR            *float64 `json:"pcr"`
	CallIVAvg      *float64 `json:"callIvAvg"`
	PutIVAvg       *float64 `json:"putIvAvg"`
	IVSkew         *float64 `json:"ivSkew"`
	ImpliedMovePct *float64 `json:"impliedMovePct"`
	CallOI         *float64 `json:"callOi"`
	PutOI          *float64 `json:"putOi"`
}
