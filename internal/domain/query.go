package domain

import "fmt"

// DurationUnit is the unit code of a historical-data duration.
type DurationUnit string

const (
	DurationSeconds DurationUnit = "S"
	DurationDays    DurationUnit = "D"
	DurationWeeks   DurationUnit = "W"
)

// IsValid reports whether the unit is one the brokerage accepts.
func (u DurationUnit) IsValid() bool {
	switch u {
	case DurationSeconds, DurationDays, DurationWeeks:
		return true
	}
	return false
}

// Duration is the lookback window of a historical-data request.
// The magnitude's range is not validated here; the brokerage enforces its own
// per-bar-size limits.
type Duration struct {
	Magnitude int
	Unit      DurationUnit
}

// String renders the brokerage wire format, e.g. "10 D".
func (d Duration) String() string {
	return fmt.Sprintf("%d %s", d.Magnitude, d.Unit)
}

// BarSize is one of the fixed bar granularities the brokerage supports.
type BarSize string

const (
	BarSize1Sec  BarSize = "1 sec"
	BarSize5Secs BarSize = "5 secs"
	BarSize15Sec BarSize = "15 secs"
	BarSize30Sec BarSize = "30 secs"
	BarSize1Min  BarSize = "1 min"
	BarSize2Min  BarSize = "2 mins"
	BarSize3Min  BarSize = "3 mins"
	BarSize5Min  BarSize = "5 mins"
	BarSize15Min BarSize = "15 mins"
	BarSize30Min BarSize = "30 mins"
	BarSize1Hour BarSize = "1 hour"
	BarSize1Day  BarSize = "1 day"
)

// IsValid reports whether the bar size is one of the supported granularities.
func (b BarSize) IsValid() bool {
	switch b {
	case BarSize1Sec, BarSize5Secs, BarSize15Sec, BarSize30Sec,
		BarSize1Min, BarSize2Min, BarSize3Min, BarSize5Min,
		BarSize15Min, BarSize30Min, BarSize1Hour, BarSize1Day:
		return true
	}
	return false
}

// WhatToShow is the price basis requested for historical bars.
type WhatToShow string

const (
	ShowTrades           WhatToShow = "TRADES"
	ShowMidpoint         WhatToShow = "MIDPOINT"
	ShowBid              WhatToShow = "BID"
	ShowAsk              WhatToShow = "ASK"
	ShowBidAsk           WhatToShow = "BID_ASK"
	ShowAdjustedLast     WhatToShow = "ADJUSTED_LAST"
	ShowHistoricalVol    WhatToShow = "HISTORICAL_VOLATILITY"
	ShowOptionImpliedVol WhatToShow = "OPTION_IMPLIED_VOLATILITY"
	ShowRebateRate       WhatToShow = "REBATE_RATE"
	ShowFeeRate          WhatToShow = "FEE_RATE"
	ShowYieldBid         WhatToShow = "YIELD_BID"
	ShowYieldAsk         WhatToShow = "YIELD_ASK"
	ShowYieldBidAsk      WhatToShow = "YIELD_BID_ASK"
	ShowYieldLast        WhatToShow = "YIELD_LAST"
	ShowSchedule         WhatToShow = "SCHEDULE"
)

// IsValid reports whether the value is a known price basis.
func (w WhatToShow) IsValid() bool {
	switch w {
	case ShowTrades, ShowMidpoint, ShowBid, ShowAsk, ShowBidAsk,
		ShowAdjustedLast, ShowHistoricalVol, ShowOptionImpliedVol,
		ShowRebateRate, ShowFeeRate, ShowYieldBid, ShowYieldAsk,
		ShowYieldBidAsk, ShowYieldLast, ShowSchedule:
		return true
	}
	return false
}

// HistoricalQuery is a fully-formed historical-data request. Constructed fresh
// per request and never mutated.
type HistoricalQuery struct {
	Contract    InstrumentSpec
	EndDateTime string // "YYYYMMDD HH:MM:SS" wire format, or "" meaning "now"
	Duration    Duration
	BarSize     BarSize
	WhatToShow  WhatToShow
	UseRTH      bool // Restrict to regular trading hours
}
