package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibTradeDesk/internal/contract"
	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/history"
	"ibTradeDesk/internal/orders"
	"ibTradeDesk/internal/ports"
)

// Mock implementations
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

type mockBrokerage struct {
	contracts []domain.ResolvedContract
	matches   []domain.SymbolMatch
	series    domain.Series
	lastQuery domain.HistoricalQuery
	statuses  []domain.OrderStatus
}

func (m *mockBrokerage) LookupContract(ctx context.Context, spec domain.InstrumentSpec) ([]domain.ResolvedContract, error) {
	out := make([]domain.ResolvedContract, len(m.contracts))
	for i, c := range m.contracts {
		c.Spec = spec
		out[i] = c
	}
	return out, nil
}

func (m *mockBrokerage) SearchMatchingSymbols(ctx context.Context, symbol string) ([]domain.SymbolMatch, error) {
	return m.matches, nil
}

func (m *mockBrokerage) RequestHistoricalBars(ctx context.Context, query domain.HistoricalQuery) (domain.Series, error) {
	m.lastQuery = query
	return m.series, nil
}

func (m *mockBrokerage) PlaceOrder(ctx context.Context, resolved domain.ResolvedContract, req domain.OrderRequest) ([]domain.OrderStatus, error) {
	return m.statuses, nil
}

func (m *mockBrokerage) CurrentTime(ctx context.Context) (time.Time, error) {
	return time.Date(2023, 5, 1, 14, 30, 0, 0, time.UTC), nil
}

type mockLedger struct {
	records []domain.LedgerRecord
}

func (m *mockLedger) Append(ctx context.Context, record domain.LedgerRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *mockLedger) ReadAll(ctx context.Context) ([]domain.LedgerRecord, error) {
	return m.records, nil
}

func newTestService(t *testing.T, client *mockBrokerage, ledger *mockLedger) *Service {
	t.Helper()
	log := &mockLogger{}
	resolver, err := contract.NewResolver(client, log)
	require.NoError(t, err)
	builder, err := history.NewBuilder(resolver, client, log)
	require.NoError(t, err)
	submitter, err := orders.NewSubmitter(resolver, client, ledger, log)
	require.NoError(t, err)
	svc, err := NewService(builder, submitter, ledger, log)
	require.NoError(t, err)
	return svc
}

func intPtr(v int) *int { return &v }

func TestService_FetchHistory(t *testing.T) {
	client := &mockBrokerage{
		contracts: []domain.ResolvedContract{{ConID: 12345, Symbol: "AUD", Currency: "CAD"}},
		series: domain.Series{
			{Timestamp: time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC), Open: 0.9, High: 0.91, Low: 0.89, Close: 0.905},
		},
	}
	svc := newTestService(t, client, &mockLedger{})

	t.Run("full end time reaches the wire", func(t *testing.T) {
		series, err := svc.FetchHistory(context.Background(), HistoryRequest{
			CurrencyPair:      "AUD.CAD",
			EndDate:           "2023-05-01",
			EndHour:           intPtr(9),
			EndMinute:         intPtr(5),
			EndSecond:         intPtr(0),
			DurationMagnitude: 10,
			DurationUnit:      "D",
			BarSize:           "1 hour",
			WhatToShow:        "MIDPOINT",
		})
		require.NoError(t, err)
		assert.Len(t, series, 1)
		assert.Equal(t, "20230501 09:05:00", client.lastQuery.EndDateTime)
		assert.Equal(t, "10 D", client.lastQuery.Duration.String())
	})

	t.Run("partial end time means now", func(t *testing.T) {
		_, err := svc.FetchHistory(context.Background(), HistoryRequest{
			CurrencyPair:      "AUD.CAD",
			EndDate:           "2023-05-01", // hour/minute/second unset
			DurationMagnitude: 10,
			DurationUnit:      "D",
			BarSize:           "1 hour",
			WhatToShow:        "MIDPOINT",
		})
		require.NoError(t, err)
		assert.Equal(t, "", client.lastQuery.EndDateTime)
	})

	t.Run("invalid pair", func(t *testing.T) {
		_, err := svc.FetchHistory(context.Background(), HistoryRequest{
			CurrencyPair: "AUDCAD", DurationMagnitude: 10, DurationUnit: "D", BarSize: "1 hour", WhatToShow: "MIDPOINT",
		})
		assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	})

	t.Run("invalid end date", func(t *testing.T) {
		_, err := svc.FetchHistory(context.Background(), HistoryRequest{
			CurrencyPair: "AUD.CAD", EndDate: "05/01/2023", DurationMagnitude: 10, DurationUnit: "D", BarSize: "1 hour", WhatToShow: "MIDPOINT",
		})
		assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	})
}

func TestService_SubmitOrderAndHistory(t *testing.T) {
	client := &mockBrokerage{
		contracts: []domain.ResolvedContract{{ConID: 756733, Symbol: "SPY", Currency: "USD"}},
		matches:   []domain.SymbolMatch{{Symbol: "SPY", SecType: domain.SecTypeStock, Exchange: "ARCA", Currency: "USD"}},
		statuses:  []domain.OrderStatus{{OrderID: 7, ClientID: 100, PermID: 555001}},
	}
	ledger := &mockLedger{}
	svc := newTestService(t, client, ledger)
	ctx := context.Background()

	result, err := svc.SubmitOrder(ctx, OrderTicket{
		Symbol:    "SPY",
		SecType:   "STK",
		Exchange:  "ARCA",
		Currency:  "USD",
		Action:    "BUY",
		OrderType: "LMT",
		Quantity:  5, LimitPrice: 150.25,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.OrderID)
	assert.Equal(t, int64(756733), result.ConID)

	records, err := svc.OrderHistory(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result, records[0])
}
