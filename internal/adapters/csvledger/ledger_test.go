package csvledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"ibTradeDesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func setupTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submitted_orders.csv")
	ledger, err := NewLedger(path, &mockLogger{})
	require.NoError(t, err)
	return ledger, path
}

func sampleRecord(orderID int64) domain.LedgerRecord {
	return domain.LedgerRecord{
		Timestamp:  time.Date(2023, 5, 1, 14, 30, 0, 0, time.UTC),
		OrderID:    orderID,
		ClientID:   100,
		PermID:     555000 + orderID,
		ConID:      756733,
		Symbol:     "SPY",
		Action:     domain.Sell,
		Size:       2.5,
		OrderType:  domain.Limit,
		LimitPrice: 150.25,
	}
}

func TestLedger_HeaderWrittenOnce(t *testing.T) {
	ledger, path := setupTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, sampleRecord(1)))

	// Reopening an existing file must not rewrite or duplicate the header.
	reopened, err := NewLedger(path, &mockLogger{})
	require.NoError(t, err)
	require.NoError(t, reopened.Append(ctx, sampleRecord(2)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Equal(t, "timestamp,order_id,client_id,perm_id,con_id,symbol,action,size,order_type,lmt_price", lines[0])
}

func TestLedger_RoundTrip(t *testing.T) {
	ledger, _ := setupTestLedger(t)
	ctx := context.Background()

	want := sampleRecord(7)
	require.NoError(t, ledger.Append(ctx, want))

	records, err := ledger.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.True(t, got.Timestamp.Equal(want.Timestamp))
	got.Timestamp = want.Timestamp
	assert.Equal(t, want, got)
}

func TestLedger_ReadAllEmpty(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	records, err := ledger.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedger_ConcurrentAppends(t *testing.T) {
	ledger, _ := setupTestLedger(t)
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
	require.Len(t, records, n)

	seen := make(map[int64]bool, n)
	for _, rec := range records {
		assert.False(t, seen[rec.OrderID], "no merged or duplicated rows")
		seen[rec.OrderID] = true
	}
}

func TestLedger_SurvivesReopen(t *testing.T) {
	ledger, path := setupTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, sampleRecord(1)))
	require.NoError(t, ledger.Append(ctx, sampleRecord(2)))

	reopened, err := NewLedger(path, &mockLogger{})
	require.NoError(t, err)

	records, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].OrderID)
	assert.Equal(t, int64(2), records[1].OrderID)
}
