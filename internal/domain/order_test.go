package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderRequest_Validate(t *testing.T) {
	spec := InstrumentSpec{Symbol: "SPY", SecType: SecTypeStock, Exchange: "ARCA", Currency: "USD"}

	tests := []struct {
		name    string
		req     OrderRequest
		wantErr bool
	}{
		{
			name: "valid market order",
			req:  OrderRequest{Contract: spec, Action: Buy, OrderType: Market, Quantity: 1},
		},
		{
			name: "valid limit order",
			req:  OrderRequest{Contract: spec, Action: Sell, OrderType: Limit, Quantity: 10, LimitPrice: 150.25},
		},
		{
			name: "market order with stale limit price is still valid",
			req:  OrderRequest{Contract: spec, Action: Buy, OrderType: Market, Quantity: 1, LimitPrice: 99},
		},
		{
			name:    "zero quantity",
			req:     OrderRequest{Contract: spec, Action: Buy, OrderType: Market, Quantity: 0},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			req:     OrderRequest{Contract: spec, Action: Buy, OrderType: Market, Quantity: -5},
			wantErr: true,
		},
		{
			name:    "limit order without limit price",
			req:     OrderRequest{Contract: spec, Action: Buy, OrderType: Limit, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "unknown action",
			req:     OrderRequest{Contract: spec, Action: "HOLD", OrderType: Market, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "unknown order type",
			req:     OrderRequest{Contract: spec, Action: Buy, OrderType: "STP", Quantity: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "10 D", Duration{Magnitude: 10, Unit: DurationDays}.String())
	assert.Equal(t, "30 S", Duration{Magnitude: 30, Unit: DurationSeconds}.String())
	assert.Equal(t, "2 W", Duration{Magnitude: 2, Unit: DurationWeeks}.String())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, DurationDays.IsValid())
	assert.False(t, DurationUnit("M").IsValid())

	assert.True(t, BarSize1Hour.IsValid())
	assert.False(t, BarSize("4 hours").IsValid())

	assert.True(t, ShowMidpoint.IsValid())
	assert.False(t, WhatToShow("LAST").IsValid())
}
