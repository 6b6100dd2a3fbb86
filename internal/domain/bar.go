package domain

import "time"

// Bar represents a single OHLC data point for one bar interval.
type Bar struct {
	Timestamp time.Time // Start of the bar interval
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
}

// Series is an ordered sequence of bars, ascending by timestamp. The ordering
// is the gateway's contract: bars are kept in the order received.
type Series []Bar
