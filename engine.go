package ggfilter

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/gogpu/gg-filter/internal/parallel"
)

// Applier produces a filtered copy of a raster. Engine is the standard
// implementation; Runner accepts any Applier so hosts can substitute
// instrumented or remote implementations.
type Applier interface {
	Apply(src *Raster, kind Kind, diagonal bool) (*Raster, error)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(src *Raster, kind Kind, diagonal bool) (*Raster, error)

// Apply calls f(src, kind, diagonal).
func (f ApplierFunc) Apply(src *Raster, kind Kind, diagonal bool) (*Raster, error) {
	return f(src, kind, diagonal)
}

// Engine applies filter kinds to whole rasters.
//
// Large rasters are split into row bands and processed on an internal
// worker pool; rasters below the parallel threshold are processed on the
// calling goroutine. Pixels are independent, so band scheduling never
// affects the output.
//
// Thread safety: Engine is safe for concurrent use. Call Close to stop
// its workers once no more Apply calls will be made.
type Engine struct {
	pool           *parallel.WorkerPool
	threshold      int
	bandsPerWorker int
}

// NewEngine creates an engine and starts its worker pool.
//
// Example:
//
//	eng := ggfilter.NewEngine(ggfilter.WithWorkers(4))
//	defer eng.Close()
//	out, err := eng.Apply(src, ggfilter.Sepia, false)
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		pool:           parallel.NewWorkerPool(o.workers),
		threshold:      o.parallelThreshold,
		bandsPerWorker: o.bandsPerWorker,
	}
}

// Workers returns the number of pool workers.
func (e *Engine) Workers() int {
	return e.pool.Workers()
}

// Close stops the worker pool. Apply keeps working after Close but runs
// on the calling goroutine.
func (e *Engine) Close() {
	e.pool.Close()
}

// Apply returns a new raster of the same dimensions as src with kind
// applied. When diagonal is true only pixels selected by DiagonalApplies
// are transformed; every other pixel is copied verbatim. NoFilter always
// yields an exact copy.
//
// src is never modified. A nil source or an unknown kind returns an error
// wrapping ErrInvalidInput. A panic raised while transforming is recovered
// and returned as an error; no partial raster is returned.
func (e *Engine) Apply(src *Raster, kind Kind, diagonal bool) (*Raster, error) {
	if src == nil {
		return nil, invalidf("nil source raster")
	}
	if !kind.Valid() {
		return nil, invalidf("unknown filter kind %d", kind)
	}
	if kind == NoFilter {
		return src.Clone(), nil
	}

	out := newRaster(src.width, src.height)
	if out.Empty() {
		return out, nil
	}

	var (
		once    sync.Once
		failure error
	)
	process := func(b parallel.Band) {
		defer func() {
			if r := recover(); r != nil {
				once.Do(func() {
					failure = errors.Errorf("ggfilter: %s transform panicked in rows [%d,%d): %v", kind, b.Y0, b.Y1, r)
				})
			}
		}()
		applyRows(src, out, kind, diagonal, b.Y0, b.Y1)
	}

	if src.width*src.height < e.threshold || e.pool.Workers() == 1 {
		process(parallel.Band{Y0: 0, Y1: src.height})
	} else {
		e.pool.ForEachBand(src.height, e.bandsPerWorker, process)
	}

	if failure != nil {
		return nil, failure
	}
	return out, nil
}

// applyRows transforms rows [y0, y1) of src into dst.
func applyRows(src, dst *Raster, kind Kind, diagonal bool, y0, y1 int) {
	w, h := src.width, src.height
	for y := y0; y < y1; y++ {
		row := y * w
		if !diagonal {
			transformSpan(src, dst, kind, row, row+w)
			continue
		}
		lo, hi := maskRow(w, h, y)
		transformSpan(src, dst, kind, row, row+lo)
		copy(dst.data[(row+lo)*4:(row+hi)*4], src.data[(row+lo)*4:(row+hi)*4])
		transformSpan(src, dst, kind, row+hi, row+w)
	}
}

// transformSpan transforms pixel indices [i0, i1).
func transformSpan(src, dst *Raster, kind Kind, i0, i1 int) {
	for i := i0; i < i1; i++ {
		dst.set(i, Transform(kind, src.get(i)))
	}
}
