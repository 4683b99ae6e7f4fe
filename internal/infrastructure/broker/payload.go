package broker

import (
	"time"

	options "optionsdesk/internal/domain/entity/options"
)

// SnapshotMessage is the JSON body published on the summaries exchange.
type SnapshotMessage struct {
	Snapshot    *options.SummarySnapshot `json:"snapshot,omitempty"`
	PublishedAt time.Time                `json:"published_at"`
}
