// Package history turns UI-level parameters into well-formed historical-data
// requests and fetches the resulting bar series through the brokerage gateway.
package history

import (
	"context"
	"fmt"
	"time"

	"ibTradeDesk/internal/contract"
	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/ports"
)

// Params are the raw, UI-level inputs to a historical-data request. The end
// time is split into its date and time-of-day components because the caller
// may leave any of them unset.
type Params struct {
	Contract  domain.InstrumentSpec
	EndDate   *time.Time // Date component of the end time; nil if unset
	EndHour   *int       // nil if unset
	EndMinute *int       // nil if unset
	EndSecond *int       // nil if unset

	DurationMagnitude int
	DurationUnit      domain.DurationUnit
	BarSize           domain.BarSize
	WhatToShow        domain.WhatToShow
	UseRTH            bool
}

// Builder constructs and executes historical-data queries.
type Builder struct {
	resolver *contract.Resolver
	client   ports.BrokerageClient
	logger   ports.Logger
}

// NewBuilder creates a query builder backed by the given resolver and client.
func NewBuilder(resolver *contract.Resolver, client ports.BrokerageClient, logger ports.Logger) (*Builder, error) {
	if resolver == nil || client == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Builder")
	}
	return &Builder{resolver: resolver, client: client, logger: logger}, nil
}

// FormatEndDateTime renders the endDateTime wire format "YYYYMMDD HH:MM:SS"
// with two-digit zero-padded time components. If any of the four components
// is unset the result is the empty string, which the brokerage interprets as
// "now". This is deliberately all-or-nothing: a missing component is never
// defaulted to zero.
func FormatEndDateTime(date *time.Time, hour, minute, second *int) string {
	if date == nil || hour == nil || minute == nil || second == nil {
		return ""
	}
	return fmt.Sprintf("%s %02d:%02d:%02d", date.Format("20060102"), *hour, *minute, *second)
}

// Build validates the enumerated parameters and assembles an immutable query.
// The duration magnitude's range is left for the brokerage to enforce.
func (b *Builder) Build(p Params) (domain.HistoricalQuery, error) {
	if !p.DurationUnit.IsValid() {
		return domain.HistoricalQuery{}, fmt.Errorf("duration unit %q: %w", p.DurationUnit, ports.ErrInvalidRequest)
	}
	if !p.BarSize.IsValid() {
		return domain.HistoricalQuery{}, fmt.Errorf("bar size %q: %w", p.BarSize, ports.ErrInvalidRequest)
	}
	if !p.WhatToShow.IsValid() {
		return domain.HistoricalQuery{}, fmt.Errorf("whatToShow %q: %w", p.WhatToShow, ports.ErrInvalidRequest)
	}

	return domain.HistoricalQuery{
		Contract:    p.Contract,
		EndDateTime: FormatEndDateTime(p.EndDate, p.EndHour, p.EndMinute, p.EndSecond),
		Duration:    domain.Duration{Magnitude: p.DurationMagnitude, Unit: p.DurationUnit},
		BarSize:     p.BarSize,
		WhatToShow:  p.WhatToShow,
		UseRTH:      p.UseRTH,
	}, nil
}

// Fetch resolves the query's contract and, only on resolver success, issues
// the historical-data request. Resolver failures propagate verbatim without
// touching the historical-data endpoint. Bars come back with parsed absolute
// timestamps, in the order the gateway returned them.
func (b *Builder) Fetch(ctx context.Context, query domain.HistoricalQuery) (domain.Series, error) {
	if _, err := b.resolver.Resolve(ctx, query.Contract); err != nil {
		return nil, err
	}

	series, err := b.client.RequestHistoricalBars(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("historical bars for %s: %w", query.Contract.Symbol, err)
	}
	b.logger.Debug(ctx, "Historical series fetched", map[string]interface{}{
		"symbol":   query.Contract.Symbol,
		"barCount": len(series),
		"barSize":  string(query.BarSize),
	})
	return series, nil
}
