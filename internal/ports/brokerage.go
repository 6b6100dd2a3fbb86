package ports

import (
	"context"
	"time"

	"ibTradeDesk/internal/domain"
)

// BrokerageClient defines the interface for the brokerage gateway collaborator.
// This abstraction decouples the trading workflow from the concrete gateway
// transport. Every call blocks until the gateway answers; callers bound
// latency through the context, and implementations must abort the in-flight
// call and surface ErrTimeout/ErrContextCanceled when it expires.
type BrokerageClient interface {
	// LookupContract queries the authoritative contract registry for the
	// given instrument. Returns the matching contracts with their echoed
	// symbol/currency and registry-assigned conIds; an empty slice means no
	// match. No validation is performed here.
	LookupContract(ctx context.Context, spec domain.InstrumentSpec) ([]domain.ResolvedContract, error)

	// SearchMatchingSymbols runs the brokerage's symbol search for the given
	// symbol fragment and returns the candidate rows.
	SearchMatchingSymbols(ctx context.Context, symbol string) ([]domain.SymbolMatch, error)

	// RequestHistoricalBars fetches the bar series described by the query.
	// Bars are returned in the order the gateway reports them; ascending
	// chronological order is the gateway's documented contract and is not
	// re-verified here.
	RequestHistoricalBars(ctx context.Context, query domain.HistoricalQuery) (domain.Series, error)

	// PlaceOrder submits an order for the resolved contract and returns the
	// status rows reported at submission time, in the order received. Later
	// rows supersede earlier ones (cumulative status updates); an error means
	// the order was not accepted.
	PlaceOrder(ctx context.Context, contract domain.ResolvedContract, req domain.OrderRequest) ([]domain.OrderStatus, error)

	// CurrentTime returns the brokerage server clock.
	CurrentTime(ctx context.Context) (time.Time, error)
}
