package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Contract Validation Errors
	ErrNotFound  = errors.New("no contract matches the requested instrument")
	ErrAmbiguous = errors.New("registry result disagrees with the requested instrument")
	ErrNoMatch   = errors.New("matching-symbols confirmation failed for the requested instrument")

	// Brokerage Errors
	ErrGatewayUnavailable = errors.New("brokerage gateway is unavailable")
	ErrConnectionFailed   = errors.New("failed to connect to the brokerage gateway")
	ErrMalformedResponse  = errors.New("brokerage response could not be parsed")
	ErrSubmissionFailed   = errors.New("brokerage rejected the order or the connection failed during placement")

	// Ledger Errors
	ErrLedgerWriteFailed = errors.New("ledger append did not persist")
	ErrLedgerReadFailed  = errors.New("ledger read failed")
)
