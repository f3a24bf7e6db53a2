// Package errs defines the shared error taxonomy used across every
// streaming-transform package (dsp/streaming and its subpackages).
//
// Following this module's ambient-error convention (no custom error-struct
// hierarchy; sentinel errors wrapped with fmt.Errorf("%w: ...") and
// distinguished with errors.Is), each spec error kind is a single sentinel
// variable. [OptimizedImplementationError] is the one kind that carries
// structured detail, attached via errors.As.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per error kind in the streaming engine's error
// taxonomy. Call sites wrap one of these with fmt.Errorf("%w: detail", ...)
// rather than constructing a new error type.
var (
	// ErrInvalidArgument reports a null/absent required input or an
	// out-of-range size, level, scale, time index, or packet index.
	ErrInvalidArgument = errors.New("streaming: invalid argument")

	// ErrIllegalState reports an operation attempted on an uninitialized
	// transform, or get-last on an empty window.
	ErrIllegalState = errors.New("streaming: illegal state")

	// ErrBoundsViolation reports an index overflow in a window or packet
	// accessor.
	ErrBoundsViolation = errors.New("streaming: bounds violation")

	// ErrUnsupported reports a factory request for a transform whose
	// implementation is deliberately absent. It is distinct from an
	// incremental step that falls back silently to FULL, which is not an
	// error.
	ErrUnsupported = errors.New("streaming: unsupported")

	// ErrOptimizedImplementationUnavailable is wrapped by an
	// *OptimizedImplementationError carrying the failure detail.
	ErrOptimizedImplementationUnavailable = errors.New("streaming: optimized implementation unavailable")
)

// OptimizedReason enumerates why an optimized implementation could not be
// obtained.
type OptimizedReason int

const (
	ReasonClassNotFound OptimizedReason = iota
	ReasonIncompatibleInterface
	ReasonInstantiationFailed
	ReasonAccessDenied
	ReasonMissingConstructor
	ReasonInitializationFailed
	ReasonUnknown
)

func (r OptimizedReason) String() string {
	switch r {
	case ReasonClassNotFound:
		return "class_not_found"
	case ReasonIncompatibleInterface:
		return "incompatible_interface"
	case ReasonInstantiationFailed:
		return "instantiation_failed"
	case ReasonAccessDenied:
		return "access_denied"
	case ReasonMissingConstructor:
		return "missing_constructor"
	case ReasonInitializationFailed:
		return "initialization_failed"
	default:
		return "unknown"
	}
}

// OptimizedImplementationError carries the detail of an
// ErrOptimizedImplementationUnavailable failure: which identifiers were
// missing, and whether a fallback to a non-optimized path is recommended.
// FallbackRecommended is true only for ReasonClassNotFound and
// ReasonIncompatibleInterface, per spec.
type OptimizedImplementationError struct {
	Reason               OptimizedReason
	MissingIdentifiers   []string
	FallbackRecommended  bool
}

// NewOptimizedImplementationError builds an error for the given reason and
// missing identifiers, setting FallbackRecommended per spec.
func NewOptimizedImplementationError(reason OptimizedReason, missing ...string) *OptimizedImplementationError {
	return &OptimizedImplementationError{
		Reason:             reason,
		MissingIdentifiers: missing,
		FallbackRecommended: reason == ReasonClassNotFound || reason == ReasonIncompatibleInterface,
	}
}

func (e *OptimizedImplementationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "optimized implementation unavailable: %s", e.Reason)
	if len(e.MissingIdentifiers) > 0 {
		fmt.Fprintf(&b, " (missing: %s)", strings.Join(e.MissingIdentifiers, ", "))
	}
	return b.String()
}

// Unwrap links this error to ErrOptimizedImplementationUnavailable so
// errors.Is(err, ErrOptimizedImplementationUnavailable) reports true.
func (e *OptimizedImplementationError) Unwrap() error {
	return ErrOptimizedImplementationUnavailable
}

// Invalid wraps ErrInvalidArgument with a formatted detail message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IllegalState wraps ErrIllegalState with a formatted detail message.
func IllegalState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalState, fmt.Sprintf(format, args...))
}

// OutOfBounds wraps ErrBoundsViolation with a formatted detail message.
func OutOfBounds(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBoundsViolation, fmt.Sprintf(format, args...))
}

// NotSupported wraps ErrUnsupported with a formatted detail message.
func NotSupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}
