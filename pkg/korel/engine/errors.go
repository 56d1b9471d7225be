package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal conditions a rule engine can hit: usage
// bugs in the caller's symbol/rule construction, never logical falsity.
// These are wrapped and panicked (see newFatalError), never returned as
// ordinary values, so a caller recovers with errors.Is/errors.As at a
// boundary of its choosing rather than checking a returned error on every
// call.
var (
	// ErrSymbolAlreadyDefined is raised by DefineSymbol when a symbol with
	// the same name already exists in the symbol table.
	ErrSymbolAlreadyDefined = errors.New("symbol already defined")

	// ErrSymbolNotFound is raised when a ComparableValue references a
	// symbol (by handle or by name) that has no fact in the knowledge base,
	// or a name absent from the symbol table.
	ErrSymbolNotFound = errors.New("symbol not found in knowledge base")

	// ErrUnsupportedValueType is raised when a numeric comparison operand
	// resolves to a Boolean or Text value, which cannot be converted to a
	// number.
	ErrUnsupportedValueType = errors.New("unsupported value type for numeric comparison")
)

// fatalError wraps a sentinel with caller-specific detail. It implements
// errors.Unwrap so errors.Is(err, ErrSymbolNotFound) works after recover().
type fatalError struct {
	sentinel error
	detail   string
}

func newFatalError(sentinel error, detail string) *fatalError {
	return &fatalError{sentinel: sentinel, detail: detail}
}

func (e *fatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.sentinel, e.detail)
}

func (e *fatalError) Unwrap() error {
	return e.sentinel
}
