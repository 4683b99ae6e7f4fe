package optionchain

import (
	"fmt"

	"optionsdesk/internal/domain/entity/options"
)

// DecodeQuote maps one record's positional values onto the named fields and
// returns the typed quote. fields and values must have equal length.
func DecodeQuote(fields []string, values []any, index int) (options.OptionQuote, error) {
	if len(fields) != len(values) {
		return options.OptionQuote{}, fmt.Errorf("%w: record %d has %d values for %d fields",
			ErrRecordMisaligned, index, len(values), len(fields))
	}
	row := make(map[string]any, len(fields))
	for i, name := range fields {
		row[name] = values[i]
	}

	q := options.OptionQuote{
		Side:       options.Side(fmt.Sprint(valueOrEmpty(row[FieldOptionType]))),
		Expiration: ExpiryToISO(row[FieldExpiration]),
		Bid:        Number(row[FieldBid]),
		Ask:        Number(row[FieldAsk]),
		Last:       Number(row[FieldLastPrice]),
		Delta:      Number(row[FieldDelta]),
		Gamma:      Number(row[FieldGamma]),
		Theta:      Number(row[FieldTheta]),
		Vega:       Number(row[FieldVega]),
		Rho:        Number(row[FieldRho]),
		TheoPrice:  Number(row[FieldTheoPrice]),
		OI:         Number(row[FieldOpenInterest]),
		Volume:     Number(row[FieldVolume]),
	}
	if strike := Number(row[FieldStrike]); strike != nil {
		q.Strike = *strike
	}
	if iv := Number(row[FieldIV]); iv != nil {
		// upstream reports IV as a fraction
		q.IV = ptr(*iv * 100)
	}
	if q.Bid != nil && q.Ask != nil {
		q.Mid = ptr((*q.Bid + *q.Ask) / 2)
		q.Spread = ptr(round2(*q.Ask - *q.Bid))
	}
	if name, ok := row[FieldName].(string); ok {
		q.Name = name
	}
	return q, nil
}

func valueOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
