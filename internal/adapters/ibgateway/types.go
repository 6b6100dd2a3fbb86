package ibgateway

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The gateway serves JSON translated from a dynamically-typed upstream, so
// numeric identifiers arrive as either JSON numbers or strings depending on
// the endpoint. flexInt accepts both; anything else is a malformed response.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("numeric field holds non-numeric string %q", s)
		}
		*f = flexInt(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

// contractPayload is the wire form of an instrument sent to the gateway.
type contractPayload struct {
	Symbol          string `json:"symbol"`
	SecType         string `json:"secType"`
	Exchange        string `json:"exchange"`
	Currency        string `json:"currency"`
	PrimaryExchange string `json:"primaryExchange,omitempty"`
}

// contractDetailsRow is one row of a contract-details response.
type contractDetailsRow struct {
	ConID    flexInt `json:"conId"`
	Symbol   string  `json:"symbol"`
	Currency string  `json:"currency"`
}

// symbolMatchRow is one row of a matching-symbols response.
type symbolMatchRow struct {
	Symbol          string `json:"symbol"`
	SecType         string `json:"secType"`
	Exchange        string `json:"exchange"`
	PrimaryExchange string `json:"primaryExchange"`
	Currency        string `json:"currency"`
}

// historyRequest is the wire form of a historical-data request.
type historyRequest struct {
	Contract    contractPayload `json:"contract"`
	EndDateTime string          `json:"endDateTime"`
	DurationStr string          `json:"durationStr"`
	BarSize     string          `json:"barSizeSetting"`
	WhatToShow  string          `json:"whatToShow"`
	UseRTH      bool            `json:"useRTH"`
}

// barRow is one bar of a historical-data response. Date is the gateway's
// bar timestamp: "YYYYMMDD HH:MM:SS" for intraday bars, "YYYYMMDD" for daily.
type barRow struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// orderPayload is the wire form of an order sent for placement.
type orderPayload struct {
	ConID         int64   `json:"conId"`
	Action        string  `json:"action"`
	OrderType     string  `json:"orderType"`
	TotalQuantity float64 `json:"totalQuantity"`
	LmtPrice      float64 `json:"lmtPrice,omitempty"`
}

// orderStatusRow is one status update from a placement response.
type orderStatusRow struct {
	OrderID  flexInt `json:"orderId"`
	ClientID flexInt `json:"clientId"`
	PermID   flexInt `json:"permId"`
}

// timeResponse is the server-clock response, seconds since the epoch.
type timeResponse struct {
	Time int64 `json:"time"`
}
