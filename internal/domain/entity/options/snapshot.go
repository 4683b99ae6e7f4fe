package options

import (
	"time"

	"github.com/google/uuid"
)

// SummarySnapshot records the summary of a chain at the moment it was refreshed.
// Only the derived summary is kept, never the chain itself.
type SummarySnapshot struct {
	ID          uuid.UUID    `json:"id"`
	Symbol      string       `json:"symbol"`
	Expiry      string       `json:"expiry"`
	StrikeCount int          `json:"strike_count"`
	CapturedAt  time.Time    `json:"captured_at"`
	Summary     ChainSummary `json:"summary"`
}

// NewSummarySnapshot stamps a summary with a fresh ID and capture time.
func NewSummarySnapshot(chain *OptionChain, summary ChainSummary, capturedAt time.Time) SummarySnapshot {
	snap := SummarySnapshot{
		ID:         uuid.New(),
		CapturedAt: capturedAt.UTC(),
		Summary:    summary,
	}
	if chain != nil {
		snap.Symbol = chain.Symbol
		snap.Expiry = chain.Expiry
		snap.StrikeCount = len(chain.Strikes)
	}
	return snap
}
