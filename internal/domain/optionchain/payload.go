package optionchain

import (
	"errors"
	"fmt"
	"strings"
)

// Upstream column names read by the decoder.
const (
	FieldAsk          = "ask"
	FieldBid          = "bid"
	FieldDelta        = "delta"
	FieldExpiration   = "expiration"
	FieldGamma        = "gamma"
	FieldIV           = "iv"
	FieldName         = "name"
	FieldOptionType   = "option-type"
	FieldRho          = "rho"
	FieldRoot         = "root"
	FieldStrike       = "strike"
	FieldTheoPrice    = "theoPrice"
	FieldTheta        = "theta"
	FieldVega         = "vega"
	FieldLastPrice    = "last_price"
	FieldOpenInterest = "open_interest"
	FieldVolume       = "volume"
)

// ScanColumns is the column set requested from the options scanner.
var ScanColumns = []string{
	FieldAsk,
	FieldBid,
	FieldDelta,
	FieldExpiration,
	FieldGamma,
	FieldIV,
	FieldName,
	FieldOptionType,
	FieldRho,
	FieldRoot,
	FieldStrike,
	FieldTheoPrice,
	FieldTheta,
	FieldVega,
	FieldLastPrice,
	FieldOpenInterest,
	FieldVolume,
}

// requiredColumns are the columns without which records cannot be grouped.
var requiredColumns = []string{FieldExpiration, FieldOptionType, FieldStrike}

var (
	ErrUnsupportedSchema = errors.New("unsupported upstream schema")
	ErrRecordMisaligned  = errors.New("record values not aligned with fields")
)

// ScanPayload is the columnar response of the options scanner.
type ScanPayload struct {
	Fields  []string     `json:"fields"`
	Symbols []ScanRecord `json:"symbols"`
}

// ScanRecord is one contract: its identifier and values aligned to Fields.
type ScanRecord struct {
	S string `json:"s"`
	F []any  `json:"f"`
}

// ValidateSchema fails when a non-empty field list lacks a required column.
// An empty list is accepted and treated as an empty dataset.
func ValidateSchema(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	present := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		present[f] = struct{}{}
	}
	var missing []string
	for _, f := range requiredColumns {
		if _, ok := present[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrUnsupportedSchema, strings.Join(missing, ","))
	}
	return nil
}
