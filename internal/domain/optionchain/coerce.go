// Package optionchain turns the columnar options-scan feed into a structured
// option chain and derives the chain summary. Everything here is pure.
package optionchain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number converts an arbitrary upstream value into a finite number.
// It returns nil for nil, NaN, infinities and values that do not parse.
func Number(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			// an empty string converts to zero, like any generic numeric cast
			return ptr(0)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return ptr(f)
}

func ptr(f float64) *float64 {
	return &f
}
