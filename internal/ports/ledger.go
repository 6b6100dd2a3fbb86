package ports

import (
	"context"

	"ibTradeDesk/internal/domain"
)

// TradeLedger is the durable, append-only record of submitted orders. It is
// the single source of truth for what orders this system has ever submitted;
// records are never rewritten or compacted.
//
// Implementations must serialize Append calls (single-writer discipline) so
// concurrent submissions never interleave partial writes or lose a record,
// and ReadAll must reflect every Append that completed before it
// (read-after-write consistency within the process).
type TradeLedger interface {
	// Append persists one record. The record is immutable once written.
	Append(ctx context.Context, record domain.LedgerRecord) error

	// ReadAll returns all records in insertion order.
	ReadAll(ctx context.Context) ([]domain.LedgerRecord, error)
}
