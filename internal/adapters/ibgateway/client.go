// Package ibgateway implements ports.BrokerageClient against an Interactive
// Brokers gateway sidecar that fronts the TWS API with JSON-over-HTTP
// endpoints. Loosely-typed gateway payloads are parsed into domain types at
// this boundary; anything that does not parse is rejected as a malformed
// response rather than propagated inward.
package ibgateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"ibTradeDesk/internal/domain"
	"ibTradeDesk/internal/ports"
)

// Client implements the ports.BrokerageClient interface over the gateway's
// HTTP API.
type Client struct {
	http   *resty.Client
	logger ports.Logger
}

// Config holds configuration specific to the gateway client adapter.
type Config struct {
	BaseURL string        // Gateway base URL, e.g. "https://localhost:5000/v1/api"
	Timeout time.Duration // Per-request timeout; 0 disables the client-side cap
	Logger  ports.Logger
}

// New creates a new gateway client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for gateway client")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required: %w", ports.ErrConfigurationError)
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	cfg.Logger.Info(context.Background(), "Gateway client configured", map[string]interface{}{"baseURL": cfg.BaseURL})
	return &Client{http: httpClient, logger: cfg.Logger}, nil
}

// handleError translates transport and HTTP-level failures into standardized
// ports errors.
func (c *Client) handleError(ctx context.Context, err error, resp *resty.Response, operation string) error {
	fields := map[string]interface{}{"operation": operation}

	if err != nil {
		fields["originalError"] = err.Error()
		var finalErr error
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
		case errors.Is(err, context.Canceled):
			finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
		case strings.Contains(err.Error(), "connection refused"),
			strings.Contains(err.Error(), "connection reset by peer"),
			strings.Contains(err.Error(), "no such host"),
			strings.Contains(err.Error(), "use of closed network connection"):
			finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
		default:
			finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUnknown, err)
		}
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
		return finalErr
	}

	if resp != nil && resp.IsError() {
		fields["statusCode"] = resp.StatusCode()
		fields["body"] = string(resp.Body())
		var mappedErr error
		switch {
		case resp.StatusCode() >= 500:
			mappedErr = ports.ErrGatewayUnavailable
		case resp.StatusCode() == 400 || resp.StatusCode() == 422:
			mappedErr = ports.ErrInvalidRequest
		default:
			mappedErr = ports.ErrUnknown
		}
		finalErr := fmt.Errorf("%s failed with status %d: %w", operation, resp.StatusCode(), mappedErr)
		c.logger.Error(ctx, finalErr, fmt.Sprintf("%s failed with HTTP error", operation), fields)
		return finalErr
	}

	return nil
}

// LookupContract queries the gateway's contract-details endpoint.
func (c *Client) LookupContract(ctx context.Context, spec domain.InstrumentSpec) ([]domain.ResolvedContract, error) {
	op := "LookupContract"
	var rows []contractDetailsRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(toContractPayload(spec)).
		SetResult(&rows).
		Post("/contract/details")
	if hErr := c.handleError(ctx, err, resp, op); hErr != nil {
		return nil, hErr
	}

	contracts := make([]domain.ResolvedContract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, domain.ResolvedContract{
			Spec:     spec,
			ConID:    int64(row.ConID),
			Symbol:   row.Symbol,
			Currency: row.Currency,
		})
	}
	return contracts, nil
}

// SearchMatchingSymbols queries the gateway's symbol search.
func (c *Client) SearchMatchingSymbols(ctx context.Context, symbol string) ([]domain.SymbolMatch, error) {
	op := "SearchMatchingSymbols"
	var rows []symbolMatchRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&rows).
		Get("/contract/matching-symbols")
	if hErr := c.handleError(ctx, err, resp, op); hErr != nil {
		return nil, hErr
	}

	matches := make([]domain.SymbolMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, domain.SymbolMatch{
			Symbol:          row.Symbol,
			SecType:         domain.SecType(row.SecType),
			Exchange:        row.Exchange,
			PrimaryExchange: row.PrimaryExchange,
			Currency:        row.Currency,
		})
	}
	return matches, nil
}

// RequestHistoricalBars fetches a bar series. Bar timestamps are parsed into
// absolute times here; rows keep the order the gateway returned them.
func (c *Client) RequestHistoricalBars(ctx context.Context, query domain.HistoricalQuery) (domain.Series, error) {
	op := "RequestHistoricalBars"
	var rows []barRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(historyRequest{
			Contract:    toContractPayload(query.Contract),
			EndDateTime: query.EndDateTime,
			DurationStr: query.Duration.String(),
			BarSize:     string(query.BarSize),
			WhatToShow:  string(query.WhatToShow),
			UseRTH:      query.UseRTH,
		}).
		SetResult(&rows).
		Post("/history/bars")
	if hErr := c.handleError(ctx, err, resp, op); hErr != nil {
		return nil, hErr
	}

	series := make(domain.Series, 0, len(rows))
	for _, row := range rows {
		ts, err := parseBarTimestamp(row.Date)
		if err != nil {
			parseErr := fmt.Errorf("%s: bar timestamp %q: %w: %w", op, row.Date, ports.ErrMalformedResponse, err)
			c.logger.Error(ctx, parseErr, "Gateway returned unparseable bar timestamp", map[string]interface{}{"date": row.Date})
			return nil, parseErr
		}
		series = append(series, domain.Bar{
			Timestamp: ts,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
		})
	}
	return series, nil
}

// PlaceOrder submits the order and returns the status rows reported by the
// gateway, in order.
func (c *Client) PlaceOrder(ctx context.Context, contract domain.ResolvedContract, req domain.OrderRequest) ([]domain.OrderStatus, error) {
	op := "PlaceOrder"
	payload := orderPayload{
		ConID:         contract.ConID,
		Action:        string(req.Action),
		OrderType:     string(req.OrderType),
		TotalQuantity: req.Quantity,
	}
	if req.OrderType == domain.Limit {
		payload.LmtPrice = req.LimitPrice
	}

	var rows []orderStatusRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&rows).
		Post("/orders/place")
	if hErr := c.handleError(ctx, err, resp, op); hErr != nil {
		return nil, hErr
	}

	statuses := make([]domain.OrderStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, domain.OrderStatus{
			OrderID:  int64(row.OrderID),
			ClientID: int64(row.ClientID),
			PermID:   int64(row.PermID),
		})
	}
	return statuses, nil
}

// CurrentTime retrieves the brokerage server clock.
func (c *Client) CurrentTime(ctx context.Context) (time.Time, error) {
	op := "CurrentTime"
	var body timeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/time")
	if hErr := c.handleError(ctx, err, resp, op); hErr != nil {
		return time.Time{}, hErr
	}
	if body.Time <= 0 {
		err := fmt.Errorf("%s: gateway returned time %d: %w", op, body.Time, ports.ErrMalformedResponse)
		return time.Time{}, err
	}
	return time.Unix(body.Time, 0).UTC(), nil
}

func toContractPayload(spec domain.InstrumentSpec) contractPayload {
	return contractPayload{
		Symbol:          spec.Symbol,
		SecType:         string(spec.SecType),
		Exchange:        spec.Exchange,
		Currency:        spec.Currency,
		PrimaryExchange: spec.PrimaryExchange,
	}
}

// parseBarTimestamp accepts the gateway's two bar timestamp layouts:
// "20230501 09:05:00" for intraday bars and "20230501" for daily bars.
func parseBarTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse("20060102 15:04:05", s); err == nil {
		return ts, nil
	}
	return time.Parse("20060102", s)
}
