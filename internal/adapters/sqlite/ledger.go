package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Ledger implements ports.TradeLedger using SQLite.
type Ledger struct {
	db     *sql.DB
	logger ports.Logger

	// Serializes appends. SQLite plus MaxOpenConns(1) already prevents
	// interleaved writes, but the single-writer discipline is part of the
	// ledger contract, not an artifact of the driver.
	mu sync.Mutex
}

// Config holds configuration for the SQLite ledger.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewLedger creates a new SQLite ledger instance.
func NewLedger(cfg Config) (*Ledger, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite ledger")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/trade_desk.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite ledger initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite ledger initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite ledger initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ledger := &Ledger{db: db, logger: cfg.Logger}

	if err := ledger.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite ledger initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite ledger ready", map[string]interface{}{"path": dbPath})

	return ledger, nil
}

// initializeSchema creates the submitted_orders table if it doesn't exist.
// The rowid preserves insertion order for ReadAll.
func (l *Ledger) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS submitted_orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TIMESTAMP NOT NULL,
		order_id INTEGER NOT NULL,
		client_id INTEGER NOT NULL,
		perm_id INTEGER NOT NULL,
		con_id INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		action TEXT NOT NULL,
		size REAL NOT NULL,
		order_type TEXT NOT NULL,
		lmt_price REAL NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_submitted_orders_symbol ON submitted_orders (symbol);
	`
	_, err := l.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db != nil {
		l.logger.Info(context.Background(), "Closing SQLite ledger")
		return l.db.Close()
	}
	return nil
}

// Append persists one submitted-order record.
func (l *Ledger) Append(ctx context.Context, record domain.LedgerRecord) error {
	const query = `
	INSERT INTO submitted_orders (timestamp, order_id, client_id, perm_id, con_id, symbol, action, size, order_type, lmt_price)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, query,
		record.Timestamp, record.OrderID, record.ClientID, record.PermID, record.ConID,
		record.Symbol, string(record.Action), record.Size, string(record.OrderType), record.LimitPrice)
	if err != nil {
		return fmt.Errorf("failed to insert submitted order %d for symbol %s: %w: %w",
			record.OrderID, record.Symbol, ports.ErrLedgerWriteFailed, err)
	}
	l.logger.Debug(ctx, "Ledger record appended", map[string]interface{}{"orderID": record.OrderID, "symbol": record.Symbol})
	return nil
}

// ReadAll returns every record in insertion order.
func (l *Ledger) ReadAll(ctx context.Context) ([]domain.LedgerRecord, error) {
	const query = `
	SELECT timestamp, order_id, client_id, perm_id, con_id, symbol, action, size, order_type, lmt_price
	FROM submitted_orders
	ORDER BY id ASC`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query submitted orders: %w: %w", ports.ErrLedgerReadFailed, err)
	}
	defer rows.Close()

	records := make([]domain.LedgerRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submitted order: %w: %w", ports.ErrLedgerReadFailed, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submitted order rows: %w: %w", ports.ErrLedgerReadFailed, err)
	}
	return records, nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord scans a row into a domain.LedgerRecord.
func scanRecord(s scanner) (domain.LedgerRecord, error) {
	var rec domain.LedgerRecord
	var action, orderType string
	err := s.Scan(
		&rec.Timestamp, &rec.OrderID, &rec.ClientID, &rec.PermID, &rec.ConID,
		&rec.Symbol, &action, &rec.Size, &orderType, &rec.LimitPrice)
	if err != nil {
		return domain.LedgerRecord{}, err
	}
	rec.Action = domain.OrderAction(action)
	rec.OrderType = domain.OrderType(orderType)
	return rec, nil
}
