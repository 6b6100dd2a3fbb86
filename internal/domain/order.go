package domain

import (
	"fmt"
	"time"
)

// OrderAction represents the side of an order (BUY or SELL).
type OrderAction string

const (
	Buy  OrderAction = "BUY"
	Sell OrderAction = "SELL"
)

// OrderType represents the supported order types.
type OrderType string

const (
	Market OrderType = "MKT"
	Limit  OrderType = "LMT"
)

// OrderRequest carries the user-entered parameters for one order submission.
type OrderRequest struct {
	Contract   InstrumentSpec
	Action     OrderAction
	OrderType  OrderType
	Quantity   float64
	LimitPrice float64 // Required iff OrderType is LMT; ignored for MKT
}

// Validate checks the request's internal consistency. Contract validity is a
// separate, brokerage-side concern.
func (r OrderRequest) Validate() error {
	if r.Action != Buy && r.Action != Sell {
		return fmt.Errorf("unknown order action %q", r.Action)
	}
	if r.OrderType != Market && r.OrderType != Limit {
		return fmt.Errorf("unknown order type %q", r.OrderType)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", r.Quantity)
	}
	if r.OrderType == Limit && r.LimitPrice <= 0 {
		return fmt.Errorf("limit order requires a positive limit price, got %v", r.LimitPrice)
	}
	return nil
}

// OrderStatus is one status row reported by the brokerage during order
// placement.
type OrderStatus struct {
	OrderID  int64
	ClientID int64
	PermID   int64
}

// OrderResult captures a completed submission: the brokerage-assigned
// identifiers plus the order parameters as submitted. This is exactly the
// row persisted to the trade ledger.
type OrderResult struct {
	Timestamp  time.Time   // Submission time (brokerage clock)
	OrderID    int64       // Highest order id reported at submission time
	ClientID   int64       // Client id from the last reported status
	PermID     int64       // Account-lifetime unique id from the last reported status
	ConID      int64       // Contract id from the submission-time resolution
	Symbol     string      // Instrument symbol
	Action     OrderAction // BUY or SELL
	Size       float64     // Quantity submitted
	OrderType  OrderType   // MKT or LMT
	LimitPrice float64     // Limit price for LMT orders, 0 otherwise
}

// LedgerRecord is an OrderResult as persisted: created once at successful
// submission, never mutated, never deleted by this core.
type LedgerRecord = OrderResult
