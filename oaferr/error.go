package oaferr

import (
	"errors"
	"fmt"
	"strings"
)

// MessageCapacity bounds RuntimeError.Message; longer messages are
// truncated on construction, matching spec.md §4.6's 256-byte buffer
// contract (a Go string has no fixed byte buffer, but the truncation
// behavior is preserved so formatted output stays bit-stable across
// implementations).
const MessageCapacity = 256

// Kind reifies the error taxonomy from spec.md §7. It is not a distinct
// Go error type per kind (the teacher's eventloop package likewise keeps
// a handful of concrete error structs rather than one per taxonomy
// entry) — it is carried as a field on RuntimeError so callers can
// switch on it or compare via Kind.Is.
type Kind int

const (
	KindUnspecified Kind = iota
	KindInvalidArgument
	KindExhausted
	KindAlreadyInitialized
	KindNotInitialized
	KindUnsupported
	KindSymbolNotFound
	KindLibraryError
	KindRecoverable
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindExhausted:
		return "Exhausted"
	case KindAlreadyInitialized:
		return "AlreadyInitialized"
	case KindNotInitialized:
		return "NotInitialized"
	case KindUnsupported:
		return "Unsupported"
	case KindSymbolNotFound:
		return "SymbolNotFound"
	case KindLibraryError:
		return "LibraryError"
	case KindRecoverable:
		return "Recoverable"
	case KindFatal:
		return "Fatal"
	default:
		return "Unspecified"
	}
}

// kindSentinel lets callers do errors.Is(err, oaferr.KindExhausted.Sentinel()).
type kindSentinel Kind

func (s kindSentinel) Error() string { return Kind(s).String() }

// Sentinel returns a stable sentinel error value for this Kind, suitable for
// use with errors.Is against a RuntimeError chain (RuntimeError.Is matches
// any error whose Kind equals the target's Kind).
func (k Kind) Sentinel() error { return kindSentinel(k) }

// RuntimeError is the cause-chained error type described in spec.md §3/§4.6.
// The cause chain is singly linked (Cause); Error()/Format() produce the
// bit-stable representation from spec.md §6.
type RuntimeError struct {
	Name       string
	Message    string
	Location   Location
	StackTrace *StackTrace
	Cause      *RuntimeError
	Kind       Kind
}

// defaultName is substituted whenever Name is empty, matching
// oaf_runtime_error_init's "null/empty name -> RuntimeError" normalisation.
const defaultName = "RuntimeError"

// New constructs a RuntimeError, normalising an empty name to "RuntimeError"
// and truncating an overlong message to MessageCapacity, per spec.md §4.6.
func New(name, message string, loc Location, cause *RuntimeError) *RuntimeError {
	if name == "" {
		name = defaultName
	}
	if len(message) > MessageCapacity {
		message = message[:MessageCapacity]
	}
	return &RuntimeError{Name: name, Message: message, Location: loc, Cause: cause}
}

// WithKind sets Kind and returns the receiver, for fluent construction.
func (e *RuntimeError) WithKind(k Kind) *RuntimeError {
	e.Kind = k
	return e
}

// AttachStackTrace sets the trace snapshot referenced by this error.
func (e *RuntimeError) AttachStackTrace(trace *StackTrace) {
	e.StackTrace = trace
}

// SetMessage replaces Message, applying the same truncation rule as New.
func (e *RuntimeError) SetMessage(message string) {
	if len(message) > MessageCapacity {
		message = message[:MessageCapacity]
	}
	e.Message = message
}

// RootCause walks the cause chain to its end.
func (e *RuntimeError) RootCause() *RuntimeError {
	cur := e
	for cur.Cause != nil {
		cur = cur.Cause
	}
	return cur
}

// ChainDepth counts the chain length including the receiver.
func (e *RuntimeError) ChainDepth() int {
	depth := 0
	for cur := e; cur != nil; cur = cur.Cause {
		depth++
	}
	return depth
}

// Error implements the standard error interface using a single frame of
// the bit-stable Format contract (no stack trace / cause chain expansion),
// so RuntimeError is a drop-in error for ordinary Go call sites.
func (e *RuntimeError) Error() string {
	if e == nil {
		return "<no error>"
	}
	return fmt.Sprintf("%s: %s (%s)", e.Name, e.Message, e.Location.String())
}

// Unwrap exposes the single-cause chain to errors.Is/errors.As.
func (e *RuntimeError) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is matches another *RuntimeError with an equal Kind, mirroring
// eventloop.AggregateError.Is's "match by category, not identity" pattern.
func (e *RuntimeError) Is(target error) bool {
	var other *RuntimeError
	if !errors.As(target, &other) {
		var sentinel kindSentinel
		if errors.As(target, &sentinel) {
			return e.Kind == Kind(sentinel)
		}
		return false
	}
	return e.Kind != KindUnspecified && e.Kind == other.Kind
}

// Format renders the full bit-stable representation from spec.md §6:
// the cause chain followed by the attached stack trace, if any.
func Format(e *RuntimeError) string {
	if e == nil {
		return "<no error>"
	}
	var b strings.Builder
	for cur, i := e, 0; cur != nil; cur, i = cur.Cause, i+1 {
		if i > 0 {
			b.WriteString("\ncaused by: ")
		}
		fmt.Fprintf(&b, "%s: %s (%s)", cur.Name, cur.Message, cur.Location.String())
	}
	if e.StackTrace != nil && e.StackTrace.Depth() > 0 {
		b.WriteString("\nstack trace:\n")
		b.WriteString(e.StackTrace.Format())
	}
	return b.String()
}
