package rdf

import "github.com/pkg/errors"

// Status is the flat error taxonomy shared by every component (§7/§8 of
// the design). Errors are values: callers switch on Status via AsStatus
// rather than catching typed panics.
type Status int

const (
	StatusSuccess Status = iota
	StatusNonFatalFailure
	StatusUnknown
	StatusBadSyntax
	StatusBadArgument
	StatusBadIterator
	StatusNotFound
	StatusIDClash
	StatusBadCurie
	StatusInternal
	StatusOverflow
	StatusInvalid
	StatusNoData
	StatusBadWrite
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNonFatalFailure:
		return "non-fatal-failure"
	case StatusUnknown:
		return "unknown"
	case StatusBadSyntax:
		return "bad-syntax"
	case StatusBadArgument:
		return "bad-argument"
	case StatusBadIterator:
		return "bad-iterator"
	case StatusNotFound:
		return "not-found"
	case StatusIDClash:
		return "id-clash"
	case StatusBadCurie:
		return "bad-curie"
	case StatusInternal:
		return "internal"
	case StatusOverflow:
		return "overflow"
	case StatusInvalid:
		return "invalid"
	case StatusNoData:
		return "no-data"
	case StatusBadWrite:
		return "bad-write"
	default:
		return "unknown"
	}
}

// statusError pairs a Status with a message and, through github.com/pkg/errors,
// a captured stack trace; it is what every failing operation in this module
// returns.
type statusError struct {
	status Status
	cause  error
}

func (e *statusError) Error() string {
	if e.cause == nil {
		return e.status.String()
	}
	return e.status.String() + ": " + e.cause.Error()
}

func (e *statusError) Unwrap() error { return e.cause }

// NewStatusError builds an error carrying the given Status, wrapping a
// formatted message with a stack trace via pkg/errors so a failure can be
// traced back to its call site without a hand-rolled error struct per
// status.
func NewStatusError(s Status, format string, args ...interface{}) error {
	return &statusError{status: s, cause: errors.Errorf(format, args...)}
}

// WrapStatus attaches a Status to an existing error while preserving its
// chain, for propagating a lower-level failure (e.g. a short byte-sink
// write) up as a specific status.
func WrapStatus(s Status, err error) error {
	if err == nil {
		return nil
	}
	return &statusError{status: s, cause: errors.WithStack(err)}
}

// AsStatus extracts the Status carried by err, or StatusUnknown if err
// does not carry one (e.g. it came from outside this module).
func AsStatus(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var se *statusError
	for e := err; e != nil; e = errors.Unwrap(e) {
		if s, ok := e.(*statusError); ok {
			se = s
			break
		}
	}
	if se == nil {
		return StatusUnknown
	}
	return se.status
}
