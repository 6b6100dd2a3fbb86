// Package contract validates user-supplied instrument descriptions against
// the brokerage's contract registry. The same validation is applied before a
// historical-data fetch and before an order submission, so both call sites
// share one source of truth for "is this the right contract".
package contract

import (
	"context"
	"fmt"

	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/ports"
)

// Resolver performs contract validation against the brokerage registry.
// It holds no state across calls.
type Resolver struct {
	client ports.BrokerageClient
	logger ports.Logger
}

// NewResolver creates a resolver backed by the given brokerage client.
func NewResolver(client ports.BrokerageClient, logger ports.Logger) (*Resolver, error) {
	if client == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Resolver")
	}
	return &Resolver{client: client, logger: logger}, nil
}

// Resolve validates the spec against the contract registry (the broad check).
// It fails with ports.ErrNotFound when the registry returns no match, and
// with ports.ErrAmbiguous when the registry's echoed symbol or currency
// differs from the requested spec. On success the returned contract carries
// the registry-assigned conId. The only side effect is the registry lookup.
func (r *Resolver) Resolve(ctx context.Context, spec domain.InstrumentSpec) (domain.ResolvedContract, error) {
	contracts, err := r.client.LookupContract(ctx, spec)
	if err != nil {
		return domain.ResolvedContract{}, fmt.Errorf("contract lookup for %s: %w", spec.Symbol, err)
	}
	if len(contracts) == 0 {
		return domain.ResolvedContract{}, fmt.Errorf("no registry match for %s.%s: %w", spec.Symbol, spec.Currency, ports.ErrNotFound)
	}

	resolved := contracts[0]
	if !resolved.EchoMatches() {
		r.logger.Warn(ctx, "Registry echo disagrees with requested spec", map[string]interface{}{
			"requestedSymbol":   spec.Symbol,
			"requestedCurrency": spec.Currency,
			"echoedSymbol":      resolved.Symbol,
			"echoedCurrency":    resolved.Currency,
		})
		return domain.ResolvedContract{}, fmt.Errorf("registry echoed %s/%s for requested %s/%s: %w",
			resolved.Symbol, resolved.Currency, spec.Symbol, spec.Currency, ports.ErrAmbiguous)
	}

	r.logger.Debug(ctx, "Contract resolved", map[string]interface{}{"symbol": spec.Symbol, "conID": resolved.ConID})
	return resolved, nil
}

// ConfirmTradable runs the narrow matching-symbols confirmation used before
// order submission. The registry's broad match can return a contract that
// nominally matches symbol+currency but not the requested venue or security
// type; this check prevents trading the wrong instrument. Fails with
// ports.ErrNoMatch when no candidate row agrees with the spec.
func (r *Resolver) ConfirmTradable(ctx context.Context, spec domain.InstrumentSpec) error {
	matches, err := r.client.SearchMatchingSymbols(ctx, spec.Symbol)
	if err != nil {
		return fmt.Errorf("matching-symbols search for %s: %w", spec.Symbol, err)
	}
	for _, m := range matches {
		if m.Agrees(spec) {
			r.logger.Debug(ctx, "Matching-symbols confirmation passed", map[string]interface{}{"symbol": spec.Symbol})
			return nil
		}
	}
	return fmt.Errorf("no matching-symbols candidate agrees with %s %s on %s: %w",
		spec.SecType, spec.Symbol, spec.Exchange, ports.ErrNoMatch)
}
