package optionchain

import (
	"slices"

	"optionsdesk/internal/domain/entity/options"
)

// Summarize computes the chain analytics over the chain's strikes.
// Every field is nil for an empty chain.
//
// The ATM strike is the middle row of the strike-ascending list, not the
// strike nearest the underlying's spot price. This assumes the listed strike
// range is roughly centred on spot.
func Summarize(chain *options.OptionChain) options.ChainSummary {
	var summary options.ChainSummary
	if chain == nil || len(chain.Strikes) == 0 {
		return summary
	}

	mid := len(chain.Strikes) / 2
	atmRow := chain.Strikes[mid]
	summary.ATMStrike = ptr(atmRow.Strike)

	var spreads, ivs, callIVs, putIVs []float64
	var callOI, putOI float64
	for _, row := range chain.Strikes {
		if row.Call != nil {
			spreads = appendDefined(spreads, row.Call.Spread)
			ivs = appendDefined(ivs, row.Call.IV)
			callIVs = appendDefined(callIVs, row.Call.IV)
			if row.Call.OI != nil && *row.Call.OI != 0 {
				callOI += *row.Call.OI
			}
		}
		if row.Put != nil {
			spreads = appendDefined(spreads, row.Put.Spread)
			ivs = appendDefined(ivs, row.Put.IV)
			putIVs = appendDefined(putIVs, row.Put.IV)
			if row.Put.OI != nil && *row.Put.OI != 0 {
				putOI += *row.Put.OI
			}
		}
	}

	summary.AvgSpread = roundedMean(spreads)
	if len(ivs) > 0 {
		summary.IVStats = &options.IVStats{
			Avg: round2(mean(ivs)),
			Min: slices.Min(ivs),
			Max: slices.Max(ivs),
		}
	}
	summary.CallIVAvg = roundedMean(callIVs)
	summary.PutIVAvg = roundedMean(putIVs)
	if summary.CallIVAvg != nil && summary.PutIVAvg != nil {
		summary.IVSkew = ptr(round2(*summary.CallIVAvg - *summary.PutIVAvg))
	}

	if callOI != 0 {
		summary.PCR = ptr(round2(putOI / callOI))
		summary.CallOI = ptr(callOI)
	}
	if putOI != 0 {
		summary.PutOI = ptr(putOI)
	}

	if atmRow.Call != nil && atmRow.Put != nil && atmRow.Call.Mid != nil && atmRow.Put.Mid != nil && atmRow.Strike != 0 {
		straddle := *atmRow.Call.Mid + *atmRow.Put.Mid
		summary.ImpliedMovePct = ptr(round2(straddle / atmRow.Strike * 100))
	}
	return summary
}

func appendDefined(values []float64, v *float64) []float64 {
	if v == nil {
		return values
	}
	return append(values, *v)
}

func roundedMean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return ptr(round2(mean(values)))
}
