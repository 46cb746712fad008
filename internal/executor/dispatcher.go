package executor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/voidrunner/internal/logging"
	"github.com/studiowebux/voidrunner/internal/types"
)

// Recorder stores finished runs
type Recorder interface {
	Record(entry types.HistoryEntry) error
}

// Observer is notified once per finished job, after the dispatcher is idle
type Observer func(job *Job, result types.Result)

// Dispatcher enforces at most one in-flight execution.
//
//	Idle --Start--> Running --Job.Run--> Idle
//
// A Start while Running is dropped: not queued, not merged.
type Dispatcher struct {
	runner   Runner
	recorder Recorder
	observer Observer
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	status  types.RunStatus
	result  *types.Result
	current *Job
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithRecorder saves every finished run
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithObserver registers the result callback
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

// WithLogger sets the dispatcher logger
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher creates an idle dispatcher
func NewDispatcher(runner Runner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner: runner,
		logger: logging.NewNop(),
		now:    time.Now,
		status: types.StatusIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Job is one accepted execution
type Job struct {
	ID      string
	Session types.SessionState
	Request types.ExecutionRequest

	d       *Dispatcher
	once    sync.Once
	started time.Time
	elapsed time.Duration
	result  types.Result
}

// Duration returns how long the call took. Zero until the job finished.
func (j *Job) Duration() time.Duration {
	return j.elapsed
}

// Start accepts a run of state unless one is already in flight.
// On acceptance the previous result is cleared and the dispatcher is Running.
// The caller must call Run on the returned job; the dispatcher stays Running
// until it does. Submit does both.
func (d *Dispatcher) Start(state types.SessionState) (*Job, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == types.StatusRunning {
		d.logger.Debug("run dropped, another run is in flight", "current", d.current.ID)
		return nil, false
	}

	job := &Job{
		ID:      uuid.NewString(),
		Session: state,
		Request: types.NewExecutionRequest(state),
		d:       d,
		started: d.now(),
	}
	d.status = types.StatusRunning
	d.result = nil
	d.current = job

	d.logger.Debug("run accepted", "job", job.ID, "lang", job.Request.Lang)
	return job, true
}

// Submit starts a run in the background. It reports whether the run was
// accepted; the result reaches the observer.
func (d *Dispatcher) Submit(ctx context.Context, state types.SessionState) bool {
	job, ok := d.Start(state)
	if !ok {
		return false
	}
	go job.Run(ctx)
	return true
}

// Run performs the remote call, publishes the result and returns the
// dispatcher to Idle. Calling Run again returns the same result without a
// second call.
func (j *Job) Run(ctx context.Context) types.Result {
	j.once.Do(func() {
		resp, err := j.d.runner.Execute(ctx, j.Request)
		j.elapsed = j.d.now().Sub(j.started)
		j.result = Classify(resp, err)
		j.d.finish(j)
	})
	return j.result
}

func (d *Dispatcher) finish(job *Job) {
	res := job.result

	d.mu.Lock()
	d.result = &res
	d.status = types.StatusIdle
	d.current = nil
	d.mu.Unlock()

	if res.IsFailure() {
		d.logger.Warn("run failed", "job", job.ID, "lang", job.Request.Lang, "duration", job.elapsed, "error", res.Cause)
	} else {
		d.logger.Info("run succeeded", "job", job.ID, "lang", job.Request.Lang, "duration", job.elapsed, "output_bytes", len(res.Output))
	}

	if d.recorder != nil {
		if err := d.recorder.Record(historyEntry(job)); err != nil {
			d.logger.Warn("failed to record run", "job", job.ID, "error", err)
		}
	}

	if d.observer != nil {
		d.observer(job, res)
	}
}

func historyEntry(job *Job) types.HistoryEntry {
	entry := types.HistoryEntry{
		ID:        job.ID,
		Timestamp: job.started,
		Language:  job.Session.Language,
		Code:      job.Session.Code,
		Stdin:     job.Session.Stdin,
		Outcome:   job.result.Outcome,
		Output:    job.result.Output,
		Message:   job.result.Message,
		Duration:  job.elapsed,
	}
	if job.result.Cause != nil {
		entry.Cause = job.result.Cause.Error()
	}
	return entry
}

// Status returns Idle or Running
func (d *Dispatcher) Status() types.RunStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Result returns the latest published result, if any.
// It is empty while a run is in flight.
func (d *Dispatcher) Result() (types.Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.result == nil {
		return types.Result{}, false
	}
	return *d.result, true
}
