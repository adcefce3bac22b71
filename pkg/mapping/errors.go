package mapping

import (
	"errors"
	"fmt"
)

// Sentinel errors for pattern evaluation. Every *InterpolationError matches
// exactly one of them with errors.Is.
var (
	// ErrUnresolvedToken indicates a required token matched no field.
	ErrUnresolvedToken = errors.New("unresolved token")

	// ErrMalformedPattern indicates the pattern has an unterminated or
	// overlapping token marker, or an empty token name.
	ErrMalformedPattern = errors.New("malformed pattern")
)

// ErrorKind classifies an InterpolationError.
type ErrorKind int

const (
	// UnresolvedToken means a required token name was not found in any source.
	UnresolvedToken ErrorKind = iota

	// MalformedPattern means the pattern itself is defective.
	MalformedPattern
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case UnresolvedToken:
		return "unresolved_token"
	case MalformedPattern:
		return "malformed_pattern"
	default:
		return "unknown"
	}
}

// InterpolationError is returned when a pattern cannot be evaluated.
// No partial output accompanies it.
type InterpolationError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Name is the token name involved, without the optional marker.
	// Empty for malformed patterns that have no usable name.
	Name string

	// Pattern is the pattern being evaluated.
	Pattern string

	// Offset is the byte offset of the offending token marker in Pattern.
	Offset int

	// Reason describes a malformed pattern.
	Reason string
}

// Error implements the error interface.
func (e *InterpolationError) Error() string {
	switch e.Kind {
	case UnresolvedToken:
		return fmt.Sprintf("unresolved token %q in pattern %q", e.Name, e.Pattern)
	case MalformedPattern:
		return fmt.Sprintf("malformed pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Reason)
	default:
		return fmt.Sprintf("interpolation failed for pattern %q", e.Pattern)
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *InterpolationError) Is(target error) bool {
	switch e.Kind {
	case UnresolvedToken:
		return target == ErrUnresolvedToken
	case MalformedPattern:
		return target == ErrMalformedPattern
	}
	return false
}

func malformed(pattern string, offset int, reason string) *InterpolationError {
	return &InterpolationError{
		Kind:    MalformedPattern,
		Pattern: pattern,
		Offset:  offset,
		Reason:  reason,
	}
}
