package optionchain

import (
	"cmp"
	"slices"

	"optionsdesk/internal/domain/entity/options"
)

// BuildChain groups the payload's quotes by expiry and strike and returns the
// chain at the selected expiry: preferredExpiry when the feed carries it,
// otherwise the earliest one. A nil payload or missing fields/symbols give an
// empty chain. Later quotes for the same (expiry, strike, side) replace earlier ones.
func BuildChain(symbol string, payload *ScanPayload, preferredExpiry string) (*options.OptionChain, error) {
	chain := &options.OptionChain{
		Symbol:   symbol,
		Strikes:  []options.OptionStrikeRow{},
		Expiries: []string{},
	}
	if payload == nil || len(payload.Fields) == 0 || len(payload.Symbols) == 0 {
		return chain, nil
	}
	if err := ValidateSchema(payload.Fields); err != nil {
		return nil, err
	}

	grouped := make(map[string]map[float64]*options.OptionStrikeRow)
	for i, rec := range payload.Symbols {
		q, err := DecodeQuote(payload.Fields, rec.F, i)
		if err != nil {
			return nil, err
		}
		if q.Name == "" {
			q.Name = rec.S
		}

		byStrike, ok := grouped[q.Expiration]
		if !ok {
			byStrike = make(map[float64]*options.OptionStrikeRow)
			grouped[q.Expiration] = byStrike
		}
		row, ok := byStrike[q.Strike]
		if !ok {
			row = &options.OptionStrikeRow{Strike: q.Strike, Expiration: q.Expiration}
			byStrike[q.Strike] = row
		}

		quote := q
		if !quote.Side.IsKnown() {
			chain.UnknownSides = append(chain.UnknownSides, quote)
			continue
		}
		if quote.Side == options.SideCall {
			row.Call = &quote
		} else {
			row.Put = &quote
		}
	}

	for expiry := range grouped {
		if expiry != "" {
			chain.Expiries = append(chain.Expiries, expiry)
		}
	}
	slices.Sort(chain.Expiries)

	chain.Expiry = selectExpiry(chain.Expiries, preferredExpiry)
	if chain.Expiry == "" {
		return chain, nil
	}
	for _, row := range grouped[chain.Expiry] {
		chain.Strikes = append(chain.Strikes, *row)
	}
	slices.SortFunc(chain.Strikes, func(a, b options.OptionStrikeRow) int {
		return cmp.Compare(a.Strike, b.Strike)
	})
	return chain, nil
}

func selectExpiry(expiries []string, preferred string) string {
	if preferred != "" && slices.Contains(expiries, preferred) {
		return preferred
	}
	if len(expiries) == 0 {
		return ""
	}
	return expiries[0]
}
