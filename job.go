package ggfilter

import (
	"strconv"
	"sync/atomic"
)

// Request is an immutable description of one filter application.
// A new Request supersedes earlier ones; requests are never modified.
type Request struct {
	Source   *Raster
	Kind     Kind
	Diagonal bool
}

// Validate checks that the request can be submitted.
// Errors wrap ErrInvalidInput.
func (r Request) Validate() error {
	if r.Source == nil {
		return invalidf("nil source raster")
	}
	if r.Source.width <= 0 || r.Source.height <= 0 {
		return invalidf("source raster is %dx%d", r.Source.width, r.Source.height)
	}
	if !r.Kind.Valid() {
		return invalidf("unknown filter kind %d", r.Kind)
	}
	return nil
}

// JobState is the lifecycle state of a Job.
//
// Transitions are monotonic: NotStarted -> Running -> one of Finished,
// Discarded or Failed. Terminal states never change.
type JobState int32

const (
	// NotStarted is the state of a job that has not been handed to a worker.
	NotStarted JobState = iota
	// Running means the job's pixel work is in progress or awaiting delivery.
	Running
	// Finished means the result was delivered to the completion hook.
	Finished
	// Discarded means the result was dropped because a newer request was
	// submitted or the runner was closed before delivery.
	Discarded
	// Failed means the applier returned an error or panicked.
	Failed
)

// String implements fmt.Stringer.
func (s JobState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	case Discarded:
		return "Discarded"
	case Failed:
		return "Failed"
	default:
		return "JobState(" + strconv.Itoa(int(s)) + ")"
	}
}

// Terminal reports whether s is Finished, Discarded or Failed.
func (s JobState) Terminal() bool {
	return s >= Finished
}

// Job tracks one submitted Request.
//
// Thread safety: all methods are safe for concurrent use.
type Job struct {
	id    uint64
	gen   uint64
	req   Request
	state atomic.Int32
	done  chan struct{}

	// finishing guards the single transition into a terminal state.
	finishing atomic.Bool

	// Written once before the terminal state is stored.
	result *Raster
	err    error
}

func newJob(id, gen uint64, req Request) *Job {
	return &Job{id: id, gen: gen, req: req, done: make(chan struct{})}
}

// ID returns the runner-unique job id. Ids increase with submission order.
func (j *Job) ID() uint64 {
	return j.id
}

// Request returns the request the job was submitted with.
func (j *Job) Request() Request {
	return j.req
}

// State returns the current lifecycle state.
func (j *Job) State() JobState {
	return JobState(j.state.Load())
}

// Done returns a channel closed when the job reaches a terminal state.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the delivered raster, or nil unless the job is Finished.
func (j *Job) Result() *Raster {
	if j.State() != Finished {
		return nil
	}
	return j.result
}

// Err returns the failure of a Failed job, or nil.
func (j *Job) Err() error {
	if j.State() != Failed {
		return nil
	}
	return j.err
}

// start moves the job from NotStarted to Running.
func (j *Job) start() bool {
	return j.state.CompareAndSwap(int32(NotStarted), int32(Running))
}

// finish moves a Running job to a terminal state exactly once.
// It reports false if the job was not Running.
func (j *Job) finish(to JobState, result *Raster, err error) bool {
	if j.State() != Running || !j.finishing.CompareAndSwap(false, true) {
		return false
	}
	j.result = result
	j.err = err
	j.state.Store(int32(to))
	close(j.done)
	return true
}
