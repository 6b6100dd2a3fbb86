package domain

import (
	"fmt"
	"strings"
)

// SecType represents the security type of a tradeable instrument.
type SecType string

const (
	SecTypeCash   SecType = "CASH"
	SecTypeStock  SecType = "STK"
	SecTypeFuture SecType = "FUT"
	SecTypeOption SecType = "OPT"
	SecTypeIndex  SecType = "IND"
)

// InstrumentSpec is the canonical description of a tradeable instrument.
// It is a plain value: construct once, never mutate. Equality is structural.
type InstrumentSpec struct {
	Symbol          string  // Instrument symbol (e.g., "AUD", "SPY")
	SecType         SecType // Security type (e.g., CASH, STK)
	Exchange        string  // Routing exchange (e.g., "IDEALPRO", "ARCA")
	Currency        string  // ISO currency code (e.g., "CAD", "USD")
	PrimaryExchange string  // Listing exchange, optional (e.g., "NASDAQ")
}

// Equal reports whether two specs describe the same instrument.
func (s InstrumentSpec) Equal(other InstrumentSpec) bool {
	return s == other
}

// ParseCurrencyPair converts a "BASE.QUOTE" pair string (e.g., "AUD.CAD")
// into the forex instrument spec the brokerage expects: the base as the
// symbol, the quote as the currency, routed to the IDEALPRO venue.
func ParseCurrencyPair(pair string) (InstrumentSpec, error) {
	parts := strings.Split(pair, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return InstrumentSpec{}, fmt.Errorf("invalid currency pair %q: expected BASE.QUOTE", pair)
	}
	return InstrumentSpec{
		Symbol:   strings.ToUpper(parts[0]),
		SecType:  SecTypeCash,
		Exchange: "IDEALPRO",
		Currency: strings.ToUpper(parts[1]),
	}, nil
}

// ResolvedContract is an InstrumentSpec the brokerage registry has confirmed,
// carrying the registry-assigned conId and the symbol/currency exactly as the
// registry echoed them. The resolution is only trustworthy when the echoed
// fields equal the requested spec's.
type ResolvedContract struct {
	Spec     InstrumentSpec
	ConID    int64  // Brokerage-assigned unique contract identifier
	Symbol   string // Symbol as echoed by the registry
	Currency string // Currency as echoed by the registry
}

// EchoMatches reports whether the registry echoed back the same symbol and
// currency that were requested.
func (c ResolvedContract) EchoMatches() bool {
	return c.Symbol == c.Spec.Symbol && c.Currency == c.Spec.Currency
}

// SymbolMatch is one candidate row from the brokerage's matching-symbols
// search, used for the narrow pre-trade confirmation.
type SymbolMatch struct {
	Symbol          string
	SecType         SecType
	Exchange        string
	PrimaryExchange string
	Currency        string
}

// Agrees reports whether the candidate row confirms the requested spec:
// symbol, secType and currency must be equal, and the requested routing
// exchange must appear as either the candidate's exchange or its primary
// exchange (listings are frequently reported under the primary venue).
func (m SymbolMatch) Agrees(spec InstrumentSpec) bool {
	if m.Symbol != spec.Symbol || m.SecType != spec.SecType || m.Currency != spec.Currency {
		return false
	}
	if m.Exchange == spec.Exchange || m.PrimaryExchange == spec.Exchange {
		return true
	}
	return spec.PrimaryExchange != "" && m.PrimaryExchange == spec.PrimaryExchange
}
