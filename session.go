package ggfilter

import (
	"log/slog"
	"sync"
)

// SourceFunc returns the raster currently displayed by the host. A session
// calls it lazily, until it yields a usable raster, and never again after
// that. It must not call back into the session.
type SourceFunc func() *Raster

// Session is the controller behind one filterable image view.
//
// The session remembers the pristine original raster the first time a
// filter is requested, so every later request transforms the original and
// filters never compound. Each effective parameter change submits a new
// request to the session's Runner; only the newest result reaches the
// onApplied hook.
//
// Thread safety: Session is safe for concurrent use.
type Session struct {
	source     SourceFunc
	runner     *Runner
	engine     *Engine
	ownsEngine bool
	logger     *slog.Logger

	mu       sync.Mutex
	pristine *Raster
	kind     Kind
	diagonal bool
	closed   bool
}

// NewSession creates a session reading its original from source and
// reporting filtered rasters to onApplied.
//
// Example:
//
//	s := ggfilter.NewSession(view.CurrentRaster, view.Show,
//	    ggfilter.WithSessionDispatcher(view.Post))
//	defer s.Close()
//
//	s.SelectFilter(ggfilter.Sepia)
//	s.SetDiagonal(true)
func NewSession(source SourceFunc, onApplied func(*Raster), opts ...SessionOption) *Session {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		source: source,
		engine: o.engine,
		logger: loggerOr(o.logger),
	}
	if s.engine == nil {
		s.engine = NewEngine(o.engineOptions...)
		s.ownsEngine = true
	}

	runnerOpts := append([]RunnerOption{WithResultHook(onApplied)}, o.runner...)
	s.runner = NewRunner(s.engine, runnerOpts...)
	return s
}

// SelectFilter switches the session to kind. It returns the submitted job,
// or a nil job when kind is already selected. Selecting NoFilter from
// another kind submits a job that restores the original.
func (s *Session) SelectFilter(kind Kind) (*Job, error) {
	if !kind.Valid() {
		return nil, invalidf("unknown filter kind %d", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	src, err := s.originalLocked()
	if err != nil {
		return nil, err
	}
	if kind == s.kind {
		return nil, nil
	}
	s.kind = kind
	return s.submitLocked(src)
}

// SetDiagonal enables or disables diagonal masking. It returns the
// submitted job, or a nil job when the flag is unchanged or no filter is
// selected; the flag is still recorded in the latter case.
//
// Setting the flag to its current value does not re-run the selected
// filter. Hosts that want a fresh result for unchanged parameters should
// select NoFilter and then the filter again.
func (s *Session) SetDiagonal(enabled bool) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if enabled == s.diagonal {
		return nil, nil
	}
	s.diagonal = enabled
	if s.kind == NoFilter {
		return nil, nil
	}
	src, err := s.originalLocked()
	if err != nil {
		return nil, err
	}
	return s.submitLocked(src)
}

// Kind returns the selected filter kind.
func (s *Session) Kind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Diagonal reports whether diagonal masking is enabled.
func (s *Session) Diagonal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diagonal
}

// Original returns the pristine original, or nil if it has not been captured yet.
func (s *Session) Original() *Raster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pristine
}

// Runner returns the session's job runner.
func (s *Session) Runner() *Runner {
	return s.runner
}

// Close discards pending results, waits for running jobs, and releases the
// session's engine. Hooks are never invoked after Close returns, except for
// hooks a queuing dispatcher already accepted, which observe the closed
// runner and drop their result. Close is safe to call multiple times.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.runner.Close()
	if s.ownsEngine {
		s.engine.Close()
	}
	s.logger.Info("ggfilter: session closed")
}

// originalLocked returns the pristine original, capturing it on first use.
// Caller must hold s.mu.
func (s *Session) originalLocked() (*Raster, error) {
	if s.pristine != nil {
		return s.pristine, nil
	}
	if s.source == nil {
		return nil, ErrNoSource
	}
	src := s.source()
	if src == nil {
		return nil, ErrNoSource
	}
	if src.Empty() {
		return nil, invalidf("source raster is %dx%d", src.width, src.height)
	}
	s.pristine = src
	s.logger.Info("ggfilter: original captured",
		slog.Int("width", src.width),
		slog.Int("height", src.height))
	return src, nil
}

// submitLocked submits the current parameters against src.
// Caller must hold s.mu.
func (s *Session) submitLocked(src *Raster) (*Job, error) {
	return s.runner.Submit(Request{Source: src, Kind: s.kind, Diagonal: s.diagonal})
}
