package ggfilter

// DiagonalApplies reports whether a transform applies at (x, y) when
// diagonal masking is enabled.
//
// The mask selects the two outer triangular bands of the image:
//
//	x < y - height/2   lower-left band
//	x - height/2 > y   upper-right band
//
// with integer division. The central diagonal band is left untouched.
// Only the height shapes the mask; width is accepted so callers can pass
// raster dimensions uniformly.
func DiagonalApplies(width, height, x, y int) bool {
	_ = width
	half := height / 2
	return x < y-half || x-half > y
}

// maskRow reports, for row y, the half-open column range [lo, hi) that is
// left untouched by the diagonal mask, clipped to [0, width).
// Columns outside [lo, hi) are transformed. It is equivalent to evaluating
// DiagonalApplies per pixel and lets the engine avoid a branch per pixel.
func maskRow(width, height, y int) (lo, hi int) {
	half := height / 2
	// Untouched iff y-half <= x <= y+half.
	lo = y - half
	hi = y + half + 1
	if lo < 0 {
		lo = 0
	}
	if hi > width {
		hi = width
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
