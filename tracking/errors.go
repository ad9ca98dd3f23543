package tracking

import "errors"

// Error kinds reported as preconditions on Track, or (Singular) as a
// rare runtime condition during the inner solve.
var (
	// ErrEmptyImage indicates a required image is missing or zero-sized.
	ErrEmptyImage = errors.New("tracking: image is empty")

	// ErrBadBBox indicates the bounding box is degenerate (width or
	// height <= 2px), non-finite, or inverted.
	ErrBadBBox = errors.New("tracking: bbox is degenerate or non-finite")

	// ErrChannelMismatch indicates a supplied image is not single-channel.
	ErrChannelMismatch = errors.New("tracking: image is not single-channel")

	// ErrSingular indicates the Gauss-Newton Hessian could not be
	// factorized to working precision. Track never returns this to
	// the caller directly: the IC driver catches it, logs a warning,
	// and commits the warp estimate as it stood before the failed
	// iteration.
	ErrSingular = errors.New("tracking: hessian is singular")
)
