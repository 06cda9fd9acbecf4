// Package ggfilter applies fixed per-pixel color filters to 8-bit ARGB
// rasters, optionally restricted to the two outer diagonal bands of the
// image, and runs the work off the caller's goroutine.
//
// # Overview
//
// The package is organized in four layers:
//   - Transform maps a single Pixel through a filter Kind.
//   - DiagonalApplies decides whether a transform applies at a coordinate.
//   - Engine applies a Kind to a whole Raster, in parallel for large rasters.
//   - Runner and Session run engine jobs in the background and deliver only
//     the newest result.
//
// # Quick Start
//
//	import "github.com/gogpu/gg-filter"
//
//	src, _ := ggfilter.RasterFromImage(img)
//
//	// Synchronous
//	eng := ggfilter.NewEngine()
//	defer eng.Close()
//	out, err := eng.Apply(src, ggfilter.Sepia, false)
//
//	// Asynchronous, as an image view would use it
//	s := ggfilter.NewSession(func() *ggfilter.Raster { return src }, show)
//	defer s.Close()
//	s.SelectFilter(ggfilter.InvertColors)
//	s.SetDiagonal(true)
//
// # Numeric Semantics
//
// All transforms compute in float64 and truncate toward zero before
// clamping to [0, 255], so results are bit-exact across platforms.
// Alpha is never modified.
//
// # Diagonal Masking
//
// With diagonal masking enabled, pixels with x < y - h/2 or x - h/2 > y
// (integer division, h = raster height) are transformed and the central
// band is copied unchanged.
//
// # Stale Results
//
// Every request supersedes the previous one. A superseded job still runs
// to completion, but its output is discarded rather than delivered, so the
// completion hook only ever sees the result of the latest request.
package ggfilter
