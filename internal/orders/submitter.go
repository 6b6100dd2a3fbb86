// Package orders builds, validates and submits orders against the brokerage,
// and records every successful submission in the trade ledger.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"ibTradeDesk/internal/contract"
	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/ports"
)

// Submitter runs the order-submission workflow. Each Submit call is an
// independent unit of work; no state is shared across submissions.
//
// Submissions are NOT deduplicated: every call that reaches the placement
// step puts a new live order on the book. The caller must ensure a submission
// is triggered by a single, genuine user action.
type Submitter struct {
	resolver *contract.Resolver
	client   ports.BrokerageClient
	ledger   ports.TradeLedger
	logger   ports.Logger
}

// NewSubmitter creates an order submitter with the given collaborators.
func NewSubmitter(resolver *contract.Resolver, client ports.BrokerageClient, ledger ports.TradeLedger, logger ports.Logger) (*Submitter, error) {
	if resolver == nil || client == nil || ledger == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Submitter")
	}
	return &Submitter{resolver: resolver, client: client, ledger: ledger, logger: logger}, nil
}

// Submit runs one submission through its states:
//
//	Validating  -> two-tier contract check; rejection has no side effects
//	Resolving   -> fresh conId for the ledger record, never a cached one
//	Building    -> limit price attached only for LMT orders
//	Submitting  -> brokerage placement; failure leaves the ledger untouched
//	Recording   -> ledger append; failure after placement is surfaced as
//	               ErrLedgerWriteFailed so the caller can reconcile manually
//
// Errors before the placement step abort with no external side effect.
func (s *Submitter) Submit(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	subID := ulid.Make().String()
	fields := map[string]interface{}{
		"submissionID": subID,
		"symbol":       req.Contract.Symbol,
		"action":       string(req.Action),
		"orderType":    string(req.OrderType),
		"quantity":     req.Quantity,
	}

	if err := req.Validate(); err != nil {
		return domain.OrderResult{}, fmt.Errorf("order request: %w: %w", ports.ErrInvalidRequest, err)
	}

	// Validating: the narrow matching-symbols confirmation, then the broad
	// registry check. Both must agree with the user's spec.
	if err := s.resolver.ConfirmTradable(ctx, req.Contract); err != nil {
		s.logger.Warn(ctx, "Order rejected by matching-symbols confirmation", fields)
		return domain.OrderResult{}, err
	}

	// Resolving: the conId recorded with the order must come from this
	// resolution; the contract may have changed since form entry.
	resolved, err := s.resolver.Resolve(ctx, req.Contract)
	if err != nil {
		s.logger.Warn(ctx, "Order rejected by contract resolution", fields)
		return domain.OrderResult{}, err
	}
	fields["conID"] = resolved.ConID

	// Building: a stale limit price on a market order must not be sent
	// upstream.
	payload := req
	if payload.OrderType != domain.Limit {
		payload.LimitPrice = 0
	}

	// Submitting.
	statuses, err := s.client.PlaceOrder(ctx, resolved, payload)
	if err != nil {
		if errors.Is(err, ports.ErrTimeout) || errors.Is(err, ports.ErrContextCanceled) {
			return domain.OrderResult{}, err
		}
		s.logger.Error(ctx, err, "Order placement failed", fields)
		return domain.OrderResult{}, fmt.Errorf("place order for %s: %w: %w", req.Contract.Symbol, ports.ErrSubmissionFailed, err)
	}
	if len(statuses) == 0 {
		err := fmt.Errorf("placement returned no status rows: %w: %w", ports.ErrSubmissionFailed, ports.ErrMalformedResponse)
		s.logger.Error(ctx, err, "Order placement returned empty status stream", fields)
		return domain.OrderResult{}, err
	}

	// Recording. The order now exists at the brokerage regardless of what
	// happens below.
	result := buildResult(resolved, payload, statuses, s.submissionTime(ctx, fields))
	if err := s.ledger.Append(ctx, result); err != nil {
		s.logger.Error(ctx, err, "Ledger append failed after successful placement", fields)
		return domain.OrderResult{}, fmt.Errorf("record order %d (order is live at the brokerage): %w: %w",
			result.OrderID, ports.ErrLedgerWriteFailed, err)
	}

	fields["orderID"] = result.OrderID
	fields["permID"] = result.PermID
	s.logger.Info(ctx, "Order submitted and recorded", fields)
	return result, nil
}

// submissionTime takes the brokerage clock for the ledger timestamp, falling
// back to local time if the clock call fails. At this point the order is
// already live, so the record must be written either way.
func (s *Submitter) submissionTime(ctx context.Context, fields map[string]interface{}) time.Time {
	ts, err := s.client.CurrentTime(ctx)
	if err != nil {
		s.logger.Warn(ctx, "Brokerage clock unavailable, using local time for ledger record", fields)
		return time.Now()
	}
	return ts
}

// buildResult aggregates the placement status stream into one result row.
// The brokerage may report several cumulative status updates for a single
// submission: the highest orderId observed is canonical, and the last row's
// clientId/permId is the freshest view.
func buildResult(resolved domain.ResolvedContract, req domain.OrderRequest, statuses []domain.OrderStatus, ts time.Time) domain.OrderResult {
	maxOrderID := statuses[0].OrderID
	for _, st := range statuses[1:] {
		if st.OrderID > maxOrderID {
			maxOrderID = st.OrderID
		}
	}
	last := statuses[len(statuses)-1]

	return domain.OrderResult{
		Timestamp:  ts,
		OrderID:    maxOrderID,
		ClientID:   last.ClientID,
		PermID:     last.PermID,
		ConID:      resolved.ConID,
		Symbol:     req.Contract.Symbol,
		Action:     req.Action,
		Size:       req.Quantity,
		OrderType:  req.OrderType,
		LimitPrice: req.LimitPrice,
	}
}
