// Package apperror classifies failures so the HTTP layer can pick a status
// code without inspecting error strings.
package apperror

import "errors"

// Kind is the class of a failure.
type Kind uint8

const (
	// Backend is a storage or infrastructure failure. Untyped errors are Backend.
	Backend Kind = iota
	// InvalidInput is a request that failed presence checks.
	InvalidInput
	// InvalidID is a resource identifier the store cannot address.
	InvalidID
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidID:
		return "invalid id"
	default:
		return "backend"
	}
}

// Error carries a Kind alongside the failed operation and its cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E builds an *Error. A nil err yields nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Backend
}
