package ggfilter

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/gogpu/gg-filter/internal/cache"
)

// Runner executes Requests off the caller's goroutine and delivers only
// the most recently submitted result.
//
// Every Submit increments the runner's generation. When a job completes,
// its generation is compared with the current one; a job that has been
// superseded is discarded instead of delivered. Supersession is advisory:
// the stale job still runs to completion, its output is simply dropped.
// The check is repeated on the dispatcher's context right before the
// completion hook runs, so a hook never observes a stale raster even when
// the dispatcher queues work. Hooks never run concurrently: a job that
// passed the check finishes its hook before any newer job is checked.
//
// Thread safety: Runner is safe for concurrent use.
type Runner struct {
	applier  Applier
	dispatch Dispatcher
	onResult func(*Raster)
	onError  func(error)
	results  *cache.Cache[resultKey, *Raster]
	logger   *slog.Logger

	mu     sync.Mutex
	gen    uint64
	nextID uint64
	closed bool

	// deliverMu serializes hooks and makes the currency check and the hook
	// call one step. It is separate from mu so hooks may call Submit.
	deliverMu sync.Mutex

	// wg tracks job goroutines, not dispatched hooks.
	wg sync.WaitGroup
}

// resultKey identifies a memoized output. Rasters are immutable, so the
// source pointer identifies its pixels.
type resultKey struct {
	src      *Raster
	kind     Kind
	diagonal bool
}

// NewRunner creates a runner that computes results with applier.
func NewRunner(applier Applier, opts ...RunnerOption) *Runner {
	o := defaultRunnerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Runner{
		applier:  applier,
		dispatch: o.dispatch,
		onResult: o.onResult,
		onError:  o.onError,
		logger:   loggerOr(o.logger),
	}
	if o.cacheSize > 0 {
		r.results = cache.New[resultKey, *Raster](o.cacheSize)
	}
	return r
}

// Submit validates req and starts it on a new goroutine. It never waits for
// pixel work. The returned job supersedes every job submitted before it.
//
// Submit returns an error wrapping ErrInvalidInput for malformed requests
// and ErrClosed after Close; no job is started in either case.
func (r *Runner) Submit(req Request) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if r.applier == nil {
		return nil, invalidf("runner has no applier")
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	r.gen++
	r.nextID++
	job := newJob(r.nextID, r.gen, req)
	job.start()
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Debug("ggfilter: job submitted",
		slog.Uint64("job", job.id),
		slog.String("kind", req.Kind.String()),
		slog.Bool("diagonal", req.Diagonal),
		slog.Int("width", req.Source.width),
		slog.Int("height", req.Source.height))

	go r.run(job)
	return job, nil
}

// Supersede invalidates every job submitted so far without starting a new one.
func (r *Runner) Supersede() {
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()
}

// Generation returns the current generation. It increases with every
// Submit and Supersede.
func (r *Runner) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Wait blocks until every submitted job has finished computing. Hooks
// queued on a non-inline dispatcher may still be pending when Wait returns.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close supersedes all jobs, rejects further submissions, and waits for
// running jobs to finish. Results that complete after Close are discarded.
// Close is safe to call multiple times.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.gen++
	r.mu.Unlock()

	r.wg.Wait()
}

// CacheStats returns result cache statistics. ok is false when caching is disabled.
func (r *Runner) CacheStats() (stats cache.Stats, ok bool) {
	if r.results == nil {
		return cache.Stats{}, false
	}
	return r.results.Stats(), true
}

// current reports whether job is still the latest and the runner is open.
func (r *Runner) current(job *Job) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && job.gen == r.gen
}

func (r *Runner) run(job *Job) {
	defer r.wg.Done()

	out, err := r.compute(job)
	if err != nil {
		r.fail(job, err)
		return
	}
	if !r.current(job) {
		r.discard(job)
		return
	}
	r.dispatch(func() { r.deliver(job, out) })
}

// compute produces the job's output, consulting the result cache first.
// A panic in the applier is converted into an error.
func (r *Runner) compute(job *Job) (out *Raster, err error) {
	req := job.req
	key := resultKey{src: req.Source, kind: req.Kind, diagonal: req.Diagonal}
	if r.results != nil {
		if cached, ok := r.results.Get(key); ok {
			r.logger.Debug("ggfilter: result cache hit", slog.Uint64("job", job.id))
			return cached, nil
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = errors.Errorf("ggfilter: job %d (%s) panicked: %v", job.id, req.Kind, rec)
		}
	}()

	out, err = r.applier.Apply(req.Source, req.Kind, req.Diagonal)
	if err != nil {
		return nil, errors.Wrapf(err, "ggfilter: job %d (%s)", job.id, req.Kind)
	}
	if out == nil {
		return nil, errors.Errorf("ggfilter: job %d (%s): applier returned no raster", job.id, req.Kind)
	}
	if r.results != nil {
		r.results.Set(key, out)
	}
	return out, nil
}

// deliver runs on the dispatcher's context.
func (r *Runner) deliver(job *Job, out *Raster) {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	if !r.current(job) {
		r.discard(job)
		return
	}
	if r.onResult != nil {
		r.onResult(out)
	}
	job.finish(Finished, out, nil)
	r.logger.Debug("ggfilter: job delivered", slog.Uint64("job", job.id))
}

func (r *Runner) discard(job *Job) {
	job.finish(Discarded, nil, nil)
	r.logger.Debug("ggfilter: job discarded", slog.Uint64("job", job.id))
}

// fail records the failure and reports it through the error hook if the
// job is still current. Stale failures are recorded but not reported.
func (r *Runner) fail(job *Job, err error) {
	job.finish(Failed, nil, err)
	r.logger.Warn("ggfilter: job failed", slog.Uint64("job", job.id), slog.Any("error", err))

	if r.onError == nil || !r.current(job) {
		return
	}
	r.dispatch(func() {
		r.deliverMu.Lock()
		defer r.deliverMu.Unlock()
		if r.current(job) {
			r.onError(err)
		}
	})
}
