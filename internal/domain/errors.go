package domain

import "fmt"

// Error types for consistent error handling across the collections engine.

// ErrFieldLengthExceeded indicates a TLV value longer than the two-digit
// length prefix can describe. Callers must shorten the source data; the
// value is never truncated.
type ErrFieldLengthExceeded struct {
	Tag    string
	Length int
	Max    int
}

func (e *ErrFieldLengthExceeded) Error() string {
	return fmt.Sprintf("field %s length exceeded: length=%d max=%d", e.Tag, e.Length, e.Max)
}

// ErrLineLengthMismatch indicates a composed remittance record whose size
// differs from the layout's declared line length. It always points to a
// bug in the bank layout, never to bad input data.
type ErrLineLengthMismatch struct {
	Record   string
	Expected int
	Actual   int
}

func (e *ErrLineLengthMismatch) Error() string {
	return fmt.Sprintf("line length mismatch [%s]: expected=%d actual=%d", e.Record, e.Expected, e.Actual)
}

// ErrInvalidWallet indicates a wallet code the bank layout does not accept.
type ErrInvalidWallet struct {
	Bank    string
	Wallet  string
	Allowed []string
}

func (e *ErrInvalidWallet) Error() string {
	return fmt.Sprintf("invalid wallet %q for %s: allowed=%v", e.Wallet, e.Bank, e.Allowed)
}

// ErrIncompleteWrite indicates the file on disk is smaller or larger than
// the generated content.
type ErrIncompleteWrite struct {
	Path     string
	Expected int64
	Written  int64
}

func (e *ErrIncompleteWrite) Error() string {
	return fmt.Sprintf("incomplete write %s: expected=%d bytes written=%d", e.Path, e.Expected, e.Written)
}

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrConflict indicates a resource already exists (e.g. a remittance file
// with the same name).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}
