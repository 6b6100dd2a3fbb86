package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ibTradeDesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestLedger creates a temporary database for testing
func setupTestLedger(t *testing.T) (*Ledger, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "trade-desk-test-*")
	require.NoError(t, err)

	ledger, err := NewLedger(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		ledger.Close()
		os.RemoveAll(tmpDir)
	}
	return ledger, cleanup
}

func sampleRecord(orderID int64) domain.LedgerRecord {
	return domain.LedgerRecord{
		Timestamp:  time.Date(2023, 5, 1, 14, 30, 0, 0, time.UTC),
		OrderID:    orderID,
		ClientID:   100,
		PermID:     555000 + orderID,
		ConID:      756733,
		Symbol:     "SPY",
		Action:     domain.Buy,
		Size:       5,
		OrderType:  domain.Limit,
		LimitPrice: 150.25,
	}
}

func TestLedger_AppendReadAllRoundTrip(t *testing.T) {
	ledger, cleanup := setupTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	want := sampleRecord(7)
	require.NoError(t, ledger.Append(ctx, want))

	records, err := ledger.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.True(t, got.Timestamp.Equal(want.Timestamp), "timestamp round-trip: got %v want %v", got.Timestamp, want.Timestamp)
	got.Timestamp = want.Timestamp
	assert.Equal(t, want, got)
}

func TestLedger_ReadAllEmpty(t *testing.T) {
	ledger, cleanup := setupTestLedger(t)
	defer cleanup()

	records, err := ledger.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedger_InsertionOrderPreserved(t *testing.T) {
	ledger, cleanup := setupTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, ledger.Append(ctx, sampleRecord(i)))
	}

	records, err := ledger.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, rec := range records {
		assert.Equal(t, int64(i+1), rec.OrderID)
	}
}

func TestLedger_ConcurrentAppends(t *testing.T) {
	ledger, cleanup := setupTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			errCh <- ledger.Append(ctx, sampleRecord(id))
		}(int64(i + 1))
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	records, err := ledger.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, n, "every concurrent append must yield exactly one record")

	seen := make(map[int64]bool, n)
	for _, rec := range records {
		assert.False(t, seen[rec.OrderID], fmt.Sprintf("duplicate record for order %d", rec.OrderID))
		seen[rec.OrderID] = true
		assert.Equal(t, "SPY", rec.Symbol, "no corrupted rows")
	}
}

func TestLedger_ReadAfterWriteConsistency(t *testing.T) {
	ledger, cleanup := setupTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	initial, err := ledger.ReadAll(ctx)
	require.NoError(t, err)

	require.NoError(t, ledger.Append(ctx, sampleRecord(42)))

	records, err := ledger.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, len(initial)+1)
}
