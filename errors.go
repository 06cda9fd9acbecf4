package ggfilter

import "github.com/pkg/errors"

// Errors returned by the filter pipeline.
var (
	// ErrInvalidInput is returned when a raster, kind or request is malformed:
	// nil source, negative or zero dimensions, or an unknown filter kind.
	ErrInvalidInput = errors.New("ggfilter: invalid input")

	// ErrClosed is returned when submitting to a runner or session that has been closed.
	ErrClosed = errors.New("ggfilter: closed")

	// ErrNoSource is returned by a session when the host has not supplied a raster yet.
	ErrNoSource = errors.New("ggfilter: no source raster")
)

// invalidf wraps ErrInvalidInput with a formatted reason.
func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}
