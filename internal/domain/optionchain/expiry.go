package optionchain

import (
	"fmt"
	"math"
	"strconv"
)

// ExpiryToISO renders a YYYYMMDD expiry (usually an 8-digit integer) as
// YYYY-MM-DD by fixed-position slicing. Calendar validity is not checked.
func ExpiryToISO(v any) string {
	s := expiryString(v)
	if s == "" {
		return ""
	}
	return slice(s, 0, 4) + "-" + slice(s, 4, 6) + "-" + slice(s, 6, 8)
}

func expiryString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return ""
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprint(n)
	}
}

func slice(s string, from, to int) string {
	if from > len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
