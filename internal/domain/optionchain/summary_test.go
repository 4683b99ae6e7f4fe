package optionchain

import (
	"math"
	"testing"

	"optionsdesk/internal/domain/entity/options"
)

func assertValue(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected %v, got nil", name, want)
		return
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, want, *got)
	}
}

func TestSummarize_SingleStrikeScenario(t *testing.T) {
	payload := mustPayload(t, `{
		"fields": ["ask","bid","expiration","option-type","strike","iv","open_interest"],
		"symbols": [
			{"s": "C", "f": [105, 95, 20240125, "call", 20000, 0.15, 1000]},
			{"s": "P", "f": [110, 90, 20240125, "put", 20000, 0.18, 1200]}
		]
	}`)
	chain, err := BuildChain("NIFTY", payload, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chain.Strikes) != 1 {
		t.Fatalf("expected one strike row, got %d", len(chain.Strikes))
	}
	row := chain.Strikes[0]
	if row.Strike != 20000 || row.Expiration != "2024-01-25" {
		t.Fatalf("unexpected row key %v/%s", row.Strike, row.Expiration)
	}
	assertValue(t, "call.mid", row.Call.Mid, 100)
	assertValue(t, "call.spread", row.Call.Spread, 10)
	assertValue(t, "put.mid", row.Put.Mid, 100)
	assertValue(t, "put.spread", row.Put.Spread, 20)

	s := Summarize(chain)
	assertValue(t, "atmStrike", s.ATMStrike, 20000)
	assertValue(t, "pcr", s.PCR, 1.2)
	assertValue(t, "callIvAvg", s.CallIVAvg, 15)
	assertValue(t, "putIvAvg", s.PutIVAvg, 18)
	assertValue(t, "ivSkew", s.IVSkew, -3)
	assertValue(t, "avgSpread", s.AvgSpread, 15)
	assertValue(t, "impliedMovePct", s.ImpliedMovePct, 1)
	assertValue(t, "callOi", s.CallOI, 1000)
	assertValue(t, "putOi", s.PutOI, 1200)
	if s.IVStats == nil {
		t.Fatal("expected iv stats")
	}
	if math.Abs(s.IVStats.Min-15) > 1e-9 || math.Abs(s.IVStats.Max-18) > 1e-9 || s.IVStats.Avg != 16.5 {
		t.Errorf("unexpected iv stats %+v", *s.IVStats)
	}
}

func TestSummarize_EmptyChain(t *testing.T) {
	for _, chain := range []*options.OptionChain{nil, {Symbol: "X"}} {
		s := Summarize(chain)
		if s != (options.ChainSummary{}) {
			t.Errorf("expected all-nil summary, got %+v", s)
		}
	}
}

func TestSummarize_PCRZeroGuard(t *testing.T) {
	zero := 0.0
	put := 500.0
	chain := &options.OptionChain{
		Strikes: []options.OptionStrikeRow{
			{Strike: 100, Call: &options.OptionQuote{Side: options.SideCall, OI: &zero}, Put: &options.OptionQuote{Side: options.SidePut, OI: &put}},
			{Strike: 110, Call: &options.OptionQuote{Side: options.SideCall}},
		},
	}
	s := Summarize(chain)
	if s.PCR != nil {
		t.Errorf("expected nil pcr, got %v", *s.PCR)
	}
	if s.CallOI != nil {
		t.Errorf("expected nil callOi, got %v", *s.CallOI)
	}
	assertValue(t, "putOi", s.PutOI, 500)
}

func TestSummarize_PositionalATM(t *testing.T) {
	chain := &options.OptionChain{}
	for _, k := range []float64{100, 110, 120, 130} {
		chain.Strikes = append(chain.Strikes, options.OptionStrikeRow{Strike: k})
	}
	s := Summarize(chain)
	// middle index of four rows is 2, regardless of where spot trades
	assertValue(t, "atmStrike", s.ATMStrike, 120)
	if s.ImpliedMovePct != nil || s.AvgSpread != nil || s.IVStats != nil || s.IVSkew != nil {
		t.Errorf("expected nil derived metrics without quotes, got %+v", s)
	}
}

func TestSummarize_SkewNeedsBothSides(t *testing.T) {
	iv := 20.0
	chain := &options.OptionChain{
		Strikes: []options.OptionStrikeRow{
			{Strike: 100, Call: &options.OptionQuote{Side: options.SideCall, IV: &iv}},
		},
	}
	s := Summarize(chain)
	assertValue(t, "callIvAvg", s.CallIVAvg, 20)
	if s.PutIVAvg != nil || s.IVSkew != nil {
		t.Errorf("expected nil putIvAvg and ivSkew, got %+v", s)
	}
}

func TestSummarize_ImpliedMoveSkipsZeroStrike(t *testing.T) {
	m := 5.0
	chain := &options.OptionChain{
		Strikes: []options.OptionStrikeRow{
			{Strike: 0, Call: &options.OptionQuote{Mid: &m}, Put: &options.OptionQuote{Mid: &m}},
		},
	}
	if s := Summarize(chain); s.ImpliedMovePct != nil {
		t.Errorf("expected nil implied move for zero strike, got %v", *s.ImpliedMovePct)
	}
}
