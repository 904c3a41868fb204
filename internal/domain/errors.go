package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Validation errors — rejected before any state mutation, recoverable.
	ErrZeroPrice         = errors.New("offer price must be positive")
	ErrNegativeDistance  = errors.New("offer distance cannot be negative")
	ErrNonPositiveAmount = errors.New("expense amount must be a positive integer")
	ErrInvalidCategory   = errors.New("unknown expense category")
	ErrEmptyMemo         = errors.New("memo requires both place and content")
	ErrInvalidMemoKind   = errors.New("unknown memo kind")
	ErrInvalidThresholds = errors.New("thresholds must be non-negative")
	ErrUnknownPlatform   = errors.New("unknown delivery platform")

	// Lookup errors — treated as a no-op by callers, never fatal.
	ErrNotFound = errors.New("record not found")

	// Store errors — engine degrades to in-memory-only operation.
	ErrStoreUnavailable = errors.New("persistent store unavailable")
)

// IsValidation reports whether err is one of the input-validation sentinels.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrZeroPrice, ErrNegativeDistance, ErrNonPositiveAmount,
		ErrInvalidCategory, ErrEmptyMemo, ErrInvalidMemoKind,
		ErrInvalidThresholds, ErrUnknownPlatform,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
