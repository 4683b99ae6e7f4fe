package optionchain

import (
	"errors"
	"math"
	"testing"

	"optionsdesk/internal/domain/entity/options"
)

func TestDecodeQuote_AllFields(t *testing.T) {
	fields := ScanColumns
	values := []any{
		105.5,                   // ask
		95.0,                    // bid
		0.52,                    // delta
		20240125.0,              // expiration
		0.0012,                  // gamma
		0.1534,                  // iv
		"NSE:NIFTY240125C20000", // name
		"call",                  // option-type
		12.1,                    // rho
		"NIFTY",                 // root
		20000.0,                 // strike
		100.7,                   // theoPrice
		-8.3,                    // theta
		11.2,                    // vega
		101.0,                   // last_price
		125000.0,                // open_interest
		3400.0,                  // volume
	}
	q, err := DecodeQuote(fields, values, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Side != options.SideCall {
		t.Errorf("expected side call, got %q", q.Side)
	}
	if q.Expiration != "2024-01-25" {
		t.Errorf("expected expiration 2024-01-25, got %q", q.Expiration)
	}
	if q.Strike != 20000 {
		t.Errorf("expected strike 20000, got %v", q.Strike)
	}
	if q.Mid == nil || *q.Mid != 100.25 {
		t.Errorf("expected mid 100.25, got %v", q.Mid)
	}
	if q.Spread == nil || *q.Spread != 10.5 {
		t.Errorf("expected spread 10.5, got %v", q.Spread)
	}
	if q.IV == nil || math.Abs(*q.IV-15.34) > 1e-9 {
		t.Errorf("expected iv 15.34, got %v", q.IV)
	}
	if q.Last == nil || *q.Last != 101 {
		t.Errorf("expected last 101, got %v", q.Last)
	}
	if q.OI == nil || *q.OI != 125000 {
		t.Errorf("expected oi 125000, got %v", q.OI)
	}
	if q.Theta == nil || *q.Theta != -8.3 {
		t.Errorf("expected theta -8.3, got %v", q.Theta)
	}
	if q.Name != "NSE:NIFTY240125C20000" {
		t.Errorf("unexpected name %q", q.Name)
	}
}

func TestDecodeQuote_NonNumericBid(t *testing.T) {
	fields := []string{"ask", "bid", "expiration", "option-type", "strike"}
	q, err := DecodeQuote(fields, []any{105.0, "n/a", 20240125.0, "put", 20000.0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Bid != nil {
		t.Errorf("expected nil bid, got %v", *q.Bid)
	}
	if q.Spread != nil {
		t.Errorf("expected nil spread, got %v", *q.Spread)
	}
	if q.Mid != nil {
		t.Errorf("expected nil mid, got %v", *q.Mid)
	}
	if q.Ask == nil || *q.Ask != 105 {
		t.Errorf("expected ask 105, got %v", q.Ask)
	}
}

func TestDecodeQuote_MissingStrikeDefaultsToZero(t *testing.T) {
	q, err := DecodeQuote([]string{"strike", "iv"}, []any{nil, nil}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Strike != 0 {
		t.Errorf("expected zero strike, got %v", q.Strike)
	}
	if q.IV != nil {
		t.Errorf("expected nil iv, got %v", *q.IV)
	}
}

func TestDecodeQuote_UnknownSideIsKept(t *testing.T) {
	q, err := DecodeQuote([]string{"option-type"}, []any{"straddle"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Side != "straddle" {
		t.Errorf("expected side to be kept verbatim, got %q", q.Side)
	}
	if q.Side.IsKnown() {
		t.Error("expected unknown side")
	}
}

func TestDecodeQuote_Misaligned(t *testing.T) {
	_, err := DecodeQuote([]string{"ask", "bid"}, []any{1.0}, 7)
	if !errors.Is(err, ErrRecordMisaligned) {
		t.Fatalf("expected ErrRecordMisaligned, got %v", err)
	}
}
