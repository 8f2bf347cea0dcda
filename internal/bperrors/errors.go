// Package bperrors holds the sentinel errors shared by the batch driver and
// the root bpalign package, so both can wrap the same identity without an
// import cycle (bpalign imports batch; batch cannot import bpalign back).
package bperrors

import "errors"

var (
	// ErrAllocation reports allocation failure of a §4.4 matrix store.
	ErrAllocation = errors.New("bpalign: allocation failed")
	// ErrDeviceSync reports a failure synchronizing the simulated stream.
	ErrDeviceSync = errors.New("bpalign: device synchronization failed")
	// ErrInvalidInput reports a caller precondition violation: an invalid
	// kernel config. Unknown alphabet symbols are not detected.
	ErrInvalidInput = errors.New("bpalign: invalid input")
)
