package models

import (
	"time"

	options "optionsdesk/internal/domain/entity/options"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SummarySnapshotModel struct {
	ID             string         `gorm:"primaryKey;column:id;type:varchar(36);not null"`
	Symbol         string         `gorm:"column:symbol;type:varchar(50);not null;index:idx_snapshots_symbol_captured,priority:1"`
	Expiry         string         `gorm:"column:expiry;type:varchar(10)"`
	StrikeCount    int            `gorm:"column:strike_count;type:integer;not null"`
	CapturedAt     time.Time      `gorm:"column:captured_at;not null;index:idx_snapshots_symbol_captured,priority:2"`
	ATMStrike      *float64       `gorm:"column:atm_strike"`
	AvgSpread      *float64       `gorm:"column:avg_spread"`
	IVAvg          *float64       `gorm:"column:iv_avg"`
	IVMin          *float64       `gorm:"column:iv_min"`
	IVMax          *float64       `gorm:"column:iv_max"`
	PCR            *float64       `gorm:"column:pcr"`
	CallIVAvg      *float64       `gorm:"column:call_iv_avg"`
	PutIVAvg       *float64       `gorm:"column:put_iv_avg"`
	IVSkew         *float64       `gorm:"column:iv_skew"`
	ImpliedMovePct *float64       `gorm:"column:implied_move_pct"`
	CallOI         *float64       `gorm:"column:call_oi"`
	PutOI          *float64       `gorm:"column:put_oi"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (SummarySnapshotModel) TableName() string {
	return "summary_snapshots"
}

func FromSnapshot(s options.SummarySnapshot) SummarySnapshotModel {
	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	m := SummarySnapshotModel{
		ID:             id.String(),
		Symbol:         s.Symbol,
		Expiry:         s.Expiry,
		StrikeCount:    s.StrikeCount,
		CapturedAt:     s.CapturedAt.UTC(),
		ATMStrike:      s.Summary.ATMStrike,
		AvgSpread:      s.Summary.AvgSpread,
		PCR:            s.Summary.PCR,
		CallIVAvg:      s.Summary.CallIVAvg,
		PutIVAvg:       s.Summary.PutIVAvg,
		IVSkew:         s.Summary.IVSkew,
		ImpliedMovePct: s.Summary.ImpliedMovePct,
		CallOI:         s.Summary.CallOI,
		PutOI:          s.Summary.PutOI,
	}
	if iv := s.Summary.IVStats; iv != nil {
		avg, lo, hi := iv.Avg, iv.Min, iv.Max
		m.IVAvg, m.IVMin, m.IVMax = &avg, &lo, &hi
	}
	return m
}

func (m SummarySnapshotModel) ToSnapshot() options.SummarySnapshot {
	id, _ := uuid.Parse(m.ID)
	s := options.SummarySnapshot{
		ID:          id,
		Symbol:      m.Symbol,
		Expiry:      m.Expiry,
		StrikeCount: m.StrikeCount,
		CapturedAt:  m.CapturedAt.UTC(),
		Summary: options.ChainSummary{
			ATMStrike:      m.ATMStrike,
			AvgSpread:      m.AvgSpread,
			PCR:            m.PCR,
			CallIVAvg:      m.CallIVAvg,
			PutIVAvg:       m.PutIVAvg,
			IVSkew:         m.IVSkew,
			ImpliedMovePct: m.ImpliedMovePct,
			CallOI:         m.CallOI,
			PutOI:          m.PutOI,
		},
	}
	if m.IVAvg != nil && m.IVMin != nil && m.IVMax != nil {
		s.Summary.IVStats = &options.IVStats{Avg: *m.IVAvg, Min: *m.IVMin, Max: *m.IVMax}
	}
	return s
}
