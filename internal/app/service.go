// Package app exposes the narrow request/response boundary the presentation
// layer calls into: fetch a historical series, submit an order, read the
// order history. All inputs arrive as UI-level values and are converted into
// domain types here.
package app

import (
	"context"
	"fmt"
	"time"

	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/history"
	"ibTradeDesk/internal/orders"
	"ibTradeDesk/internal/ports"
)

// HistoryRequest carries the user-entered parameters for a historical-data
// fetch. The end-time components are independent optionals: the query carries
// an absolute end time only when all four are present.
type HistoryRequest struct {
	CurrencyPair string // "BASE.QUOTE", e.g. "AUD.CAD"

	EndDate   string // "YYYY-MM-DD", empty if unset
	EndHour   *int
	EndMinute *int
	EndSecond *int

	DurationMagnitude int
	DurationUnit      string
	BarSize           string
	WhatToShow        string
	UseRTH            bool
}

// OrderTicket carries the user-entered parameters for an order submission.
type OrderTicket struct {
	Symbol          string
	SecType         string
	Exchange        string
	PrimaryExchange string
	Currency        string
	Action          string
	OrderType       string
	Quantity        float64
	LimitPrice      float64
}

// Service wires the workflow components behind one facade.
type Service struct {
	builder   *history.Builder
	submitter *orders.Submitter
	ledger    ports.TradeLedger
	logger    ports.Logger
}

// NewService creates the application service.
func NewService(builder *history.Builder, submitter *orders.Submitter, ledger ports.TradeLedger, logger ports.Logger) (*Service, error) {
	if builder == nil || submitter == nil || ledger == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Service")
	}
	return &Service{builder: builder, submitter: submitter, ledger: ledger, logger: logger}, nil
}

// FetchHistory validates the instrument and returns its bar series.
func (s *Service) FetchHistory(ctx context.Context, req HistoryRequest) (domain.Series, error) {
	spec, err := domain.ParseCurrencyPair(req.CurrencyPair)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidRequest, err)
	}

	var endDate *time.Time
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end date %q: %w: %w", req.EndDate, ports.ErrInvalidRequest, err)
		}
		endDate = &d
	}

	query, err := s.builder.Build(history.Params{
		Contract:          spec,
		EndDate:           endDate,
		EndHour:           req.EndHour,
		EndMinute:         req.EndMinute,
		EndSecond:         req.EndSecond,
		DurationMagnitude: req.DurationMagnitude,
		DurationUnit:      domain.DurationUnit(req.DurationUnit),
		BarSize:           domain.BarSize(req.BarSize),
		WhatToShow:        domain.WhatToShow(req.WhatToShow),
		UseRTH:            req.UseRTH,
	})
	if err != nil {
		return nil, err
	}
	return s.builder.Fetch(ctx, query)
}

// SubmitOrder runs one order submission. It must only ever be called from a
// caller-confirmed submit command, never from a default or initial trigger
// value; the core does not distinguish a genuine trigger from a spurious one.
func (s *Service) SubmitOrder(ctx context.Context, ticket OrderTicket) (domain.OrderResult, error) {
	req := domain.OrderRequest{
		Contract: domain.InstrumentSpec{
			Symbol:          ticket.Symbol,
			SecType:         domain.SecType(ticket.SecType),
			Exchange:        ticket.Exchange,
			Currency:        ticket.Currency,
			PrimaryExchange: ticket.PrimaryExchange,
		},
		Action:     domain.OrderAction(ticket.Action),
		OrderType:  domain.OrderType(ticket.OrderType),
		Quantity:   ticket.Quantity,
		LimitPrice: ticket.LimitPrice,
	}
	return s.submitter.Submit(ctx, req)
}

// OrderHistory returns every order this system has ever submitted, in
// insertion order.
func (s *Service) OrderHistory(ctx context.Context) ([]domain.LedgerRecord, error) {
	return s.ledger.ReadAll(ctx)
}
