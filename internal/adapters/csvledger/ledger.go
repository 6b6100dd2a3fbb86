// Package csvledger persists the trade ledger as a header-stable CSV file,
// one submitted order per row.
package csvledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/ports"
)

var header = []string{
	"timestamp", "order_id", "client_id", "perm_id", "con_id",
	"symbol", "action", "size", "order_type", "lmt_price",
}

// Ledger implements ports.TradeLedger over a CSV file.
type Ledger struct {
	path   string
	logger ports.Logger

	// Guards the read-then-append sequence on the underlying file. Two
	// racing appends on the same file would otherwise interleave rows.
	mu sync.RWMutex
}

// NewLedger opens (or creates) the CSV ledger at path, writing the header if
// the file is new or empty.
func NewLedger(path string, logger ports.Logger) (*Ledger, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for CSV ledger")
	}
	if path == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory '%s': %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file '%s': %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat ledger file '%s': %w", path, err)
	}
	if info.Size() == 0 {
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("failed to write ledger header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to flush ledger header: %w", err)
		}
	}

	logger.Info(context.Background(), "CSV ledger ready", map[string]interface{}{"path": path})
	return &Ledger{path: path, logger: logger}, nil
}

// Append writes one record to the end of the file. The write is flushed and
// checked before returning, so a nil error means the row is on disk.
func (l *Ledger) Append(ctx context.Context, record domain.LedgerRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger for append: %w: %w", ports.ErrLedgerWriteFailed, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(marshalRecord(record)); err != nil {
		return fmt.Errorf("failed to write ledger row: %w: %w", ports.ErrLedgerWriteFailed, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger row: %w: %w", ports.ErrLedgerWriteFailed, err)
	}

	l.logger.Debug(ctx, "Ledger record appended", map[string]interface{}{"orderID": record.OrderID, "symbol": record.Symbol})
	return nil
}

// ReadAll parses the whole file and returns the records in insertion order.
func (l *Ledger) ReadAll(ctx context.Context) ([]domain.LedgerRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger for read: %w: %w", ports.ErrLedgerReadFailed, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		if err == io.EOF {
			return []domain.LedgerRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger header: %w: %w", ports.ErrLedgerReadFailed, err)
	}

	records := make([]domain.LedgerRecord, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger row: %w: %w", ports.ErrLedgerReadFailed, err)
		}
		rec, err := unmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ledger row: %w: %w", ports.ErrLedgerReadFailed, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func marshalRecord(rec domain.LedgerRecord) []string {
	return []string{
		rec.Timestamp.Format(time.RFC3339Nano),
		strconv.FormatInt(rec.OrderID, 10),
		strconv.FormatInt(rec.ClientID, 10),
		strconv.FormatInt(rec.PermID, 10),
		strconv.FormatInt(rec.ConID, 10),
		rec.Symbol,
		string(rec.Action),
		strconv.FormatFloat(rec.Size, 'f', -1, 64),
		string(rec.OrderType),
		strconv.FormatFloat(rec.LimitPrice, 'f', -1, 64),
	}
}

func unmarshalRecord(row []string) (domain.LedgerRecord, error) {
	if len(row) != len(header) {
		return domain.LedgerRecord{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}
	ts, err := time.Parse(time.RFC3339Nano, row[0])
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad timestamp %q: %w", row[0], err)
	}
	orderID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad order_id %q: %w", row[1], err)
	}
	clientID, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad client_id %q: %w", row[2], err)
	}
	permID, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad perm_id %q: %w", row[3], err)
	}
	conID, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad con_id %q: %w", row[4], err)
	}
	size, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad size %q: %w", row[7], err)
	}
	lmtPrice, err := strconv.ParseFloat(row[9], 64)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("bad lmt_price %q: %w", row[9], err)
	}
	return domain.LedgerRecord{
		Timestamp:  ts,
		OrderID:    orderID,
		ClientID:   clientID,
		PermID:     permID,
		ConID:      conID,
		Symbol:     row[5],
		Action:     domain.OrderAction(row[6]),
		Size:       size,
		OrderType:  domain.OrderType(row[8]),
		LimitPrice: lmtPrice,
	}, nil
}
