package ggfilter

import "log/slog"

// EngineOption configures an Engine during creation.
//
// Example:
//
//	// Default: GOMAXPROCS workers
//	eng := ggfilter.NewEngine()
//
//	// Two workers, parallelize only rasters of 1 megapixel or more
//	eng := ggfilter.NewEngine(ggfilter.WithWorkers(2), ggfilter.WithParallelThreshold(1<<20))
type EngineOption func(*engineOptions)

type engineOptions struct {
	workers           int
	parallelThreshold int
	bandsPerWorker    int
}

// DefaultParallelThreshold is the pixel count below which an Engine
// processes a raster on the calling goroutine.
const DefaultParallelThreshold = 64 * 64

func defaultEngineOptions() engineOptions {
	return engineOptions{
		workers:           0, // GOMAXPROCS
		parallelThreshold: DefaultParallelThreshold,
		bandsPerWorker:    4,
	}
}

// WithWorkers sets the number of pool workers. Zero or negative means GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithParallelThreshold sets the minimum pixel count for parallel processing.
// Use 0 to parallelize every raster.
func WithParallelThreshold(pixels int) EngineOption {
	return func(o *engineOptions) {
		if pixels < 0 {
			pixels = 0
		}
		o.parallelThreshold = pixels
	}
}

// Dispatcher runs fn on the execution context that owns the display, for
// example by posting it to a UI event loop. Runner uses it for completion
// and error hooks. The default dispatcher calls fn on the job goroutine.
type Dispatcher func(fn func())

func inlineDispatcher(fn func()) { fn() }

// RunnerOption configures a Runner during creation.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	dispatch  Dispatcher
	onResult  func(*Raster)
	onError   func(error)
	cacheSize int
	logger    *slog.Logger
}

func defaultRunnerOptions() runnerOptions {
	return runnerOptions{
		dispatch: inlineDispatcher,
	}
}

// WithDispatcher sets the context that completion and error hooks run on.
// A nil dispatcher restores the inline default.
func WithDispatcher(d Dispatcher) RunnerOption {
	return func(o *runnerOptions) {
		if d == nil {
			d = inlineDispatcher
		}
		o.dispatch = d
	}
}

// WithResultHook sets the completion hook. It is invoked at most once per
// job, and only for the most recently submitted job.
func WithResultHook(fn func(*Raster)) RunnerOption {
	return func(o *runnerOptions) {
		o.onResult = fn
	}
}

// WithErrorHook sets the hook invoked when the current job fails.
func WithErrorHook(fn func(error)) RunnerOption {
	return func(o *runnerOptions) {
		o.onError = fn
	}
}

// WithResultCache memoizes up to n outputs keyed by source raster, kind and
// diagonal flag. Zero disables the cache.
func WithResultCache(n int) RunnerOption {
	return func(o *runnerOptions) {
		if n < 0 {
			n = 0
		}
		o.cacheSize = n
	}
}

// WithRunnerLogger sets the logger used for job lifecycle events.
// Defaults to the package logger (see SetLogger).
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(o *runnerOptions) {
		o.logger = l
	}
}

// SessionOption configures a Session during creation.
//
// Example:
//
//	s := ggfilter.NewSession(view.CurrentRaster, view.Show,
//	    ggfilter.WithSessionDispatcher(view.Post),
//	    ggfilter.WithCacheSize(8),
//	)
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	engine        *Engine
	engineOptions []EngineOption
	runner        []RunnerOption
	logger        *slog.Logger
}

// WithEngine makes the session use a shared engine. The session does not
// close a shared engine.
func WithEngine(e *Engine) SessionOption {
	return func(o *sessionOptions) {
		o.engine = e
	}
}

// WithEngineOptions configures the engine a session creates for itself.
// Ignored when WithEngine is used.
func WithEngineOptions(opts ...EngineOption) SessionOption {
	return func(o *sessionOptions) {
		o.engineOptions = append(o.engineOptions, opts...)
	}
}

// WithSessionDispatcher sets the context the session's hooks run on.
func WithSessionDispatcher(d Dispatcher) SessionOption {
	return func(o *sessionOptions) {
		o.runner = append(o.runner, WithDispatcher(d))
	}
}

// WithErrorHandler sets the hook invoked when the current job fails.
func WithErrorHandler(fn func(error)) SessionOption {
	return func(o *sessionOptions) {
		o.runner = append(o.runner, WithErrorHook(fn))
	}
}

// WithCacheSize memoizes up to n filtered outputs of the pristine original,
// so switching back to a previously applied filter skips the pixel work.
func WithCacheSize(n int) SessionOption {
	return func(o *sessionOptions) {
		o.runner = append(o.runner, WithResultCache(n))
	}
}

// WithSessionLogger sets the logger used by the session and its runner.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = l
		o.runner = append(o.runner, WithRunnerLogger(l))
	}
}
