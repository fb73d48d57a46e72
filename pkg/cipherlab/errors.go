package cipherlab

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes. The concrete error types
// below match them through errors.Is, so callers that only need the class can
// write errors.Is(err, cipherlab.ErrDomain).
var (
	// ErrConfiguration indicates a permutation table or S-box has the wrong
	// shape or contains an out-of-range entry.
	ErrConfiguration = errors.New("invalid cipher configuration")

	// ErrLengthMismatch indicates two bit sequences that must be the same
	// length are not.
	ErrLengthMismatch = errors.New("bit length mismatch")

	// ErrDomain indicates an input outside the accepted domain: a non-binary
	// character, a block or key of the wrong width, or a shift amount larger
	// than the sequence.
	ErrDomain = errors.New("value outside domain")
)

// ConfigurationError reports a malformed table. Table names the offending
// table (for example "P10" or "S0").
type ConfigurationError struct {
	Table  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("configuration: %s", e.Reason)
	}
	return fmt.Sprintf("configuration: table %s: %s", e.Table, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// LengthMismatchError reports an XOR over sequences of different lengths.
type LengthMismatchError struct {
	Left  int
	Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d bits vs %d bits", e.Left, e.Right)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// DomainError reports a value outside its accepted domain. Field names the
// input ("plaintext", "key", "shift", ...).
type DomainError struct {
	Field  string
	Reason string
}

func (e *DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("domain: %s", e.Reason)
	}
	return fmt.Sprintf("domain: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// NewConfigurationError formats a ConfigurationError for table.
func NewConfigurationError(table, format string, args ...any) error {
	return &ConfigurationError{Table: table, Reason: fmt.Sprintf(format, args...)}
}

// NewDomainError formats a DomainError for field.
func NewDomainError(field, format string, args ...any) error {
	return &DomainError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Kind returns a short stable name for the class of err, suitable for API
// responses and metric labels. Unclassified errors return "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrDomain):
		return "domain"
	default:
		return "internal"
	}
}
