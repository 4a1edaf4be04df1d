package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/model"
)

// JobIDPrefix prefixes generated job IDs
const JobIDPrefix = "job-"

var errNoMetadata = errors.New("engine returned no metadata")

// Outcome is the terminal result of a job
type Outcome struct {
	Kind     model.JobKind
	Info     *model.VideoInfo       // set for successful info fetches
	Download *model.DownloadSuccess // set for successful downloads
	Err      error
}

// OK reports whether the job succeeded
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message returns the human-readable text for the outcome
func (o Outcome) Message() string {
	switch {
	case o.Err != nil:
		return o.Err.Error()
	case o.Info != nil:
		return o.Info.Text()
	case o.Download != nil:
		return StatusDownloadCompleted
	default:
		return ""
	}
}

// Job is the handle returned on submission. Workers are never joined by the
// runner; callers that need the outcome wait on Done.
type Job struct {
	ID        string
	Kind      model.JobKind
	URL       string
	StartedAt time.Time

	done     chan struct{}
	finished bool // guarded by Runner.mu
	outcome  Outcome
}

// Done is closed once the job has reported and the runner is idle again
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Outcome returns the job result. It is only meaningful after Done is closed.
func (j *Job) Outcome() Outcome {
	return j.outcome
}

// Wait blocks until the job is done or ctx expires
func (j *Job) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-j.done:
		return j.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Runner executes at most one job at a time on a background goroutine and
// owns the job state.
type Runner struct {
	ctx      context.Context
	engine   Engine
	reporter Reporter
	log      logrus.FieldLogger

	mu      sync.Mutex
	state   model.JobState
	current *Job
}

var _ Orchestrator = (*Runner)(nil)

// NewRunner creates an idle runner. ctx is handed to the engine for every job;
// cancelling it is only meant for application shutdown.
func NewRunner(ctx context.Context, engine Engine, reporter Reporter) *Runner {
	return &Runner{
		ctx:      ctx,
		engine:   engine,
		reporter: reporter,
		log:      logging.L(),
		state:    model.JobStateIdle,
	}
}

// SetLogger replaces the runner logger
func (r *Runner) SetLogger(l logrus.FieldLogger) {
	r.log = l
}

// State returns the current job state
func (r *Runner) State() model.JobState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Busy reports whether a submission would be rejected
func (r *Runner) Busy() bool {
	return r.State() != model.JobStateIdle
}

// Current returns the running job, or nil when idle
func (r *Runner) Current() *Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SubmitInfoFetch starts a metadata-only job for url
func (r *Runner) SubmitInfoFetch(url string) (*Job, error) {
	url = strings.TrimSpace(url)
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	job, err := r.begin(model.JobKindInfo, url)
	if err != nil {
		return nil, err
	}

	go r.run(job, StatusFetchingInfo, func(ctx context.Context, _ *jobReporter) Outcome {
		raw, err := r.engine.ExtractMetadata(ctx, url)
		if err == nil && raw == nil {
			err = errNoMetadata
		}
		if err != nil {
			return Outcome{Kind: model.JobKindInfo, Err: &EngineError{Kind: model.JobKindInfo, Cause: err}}
		}
		return Outcome{Kind: model.JobKindInfo, Info: model.NewVideoInfo(raw)}
	})
	return job, nil
}

// SubmitDownload validates req on the calling goroutine and starts a download
// job. Validation failures return without entering the running state.
func (r *Runner) SubmitDownload(req model.DownloadRequest) (*Job, error) {
	req.URL = strings.TrimSpace(req.URL)
	if err := Validate(req); err != nil {
		return nil, err
	}
	spec := Resolve(req.Quality, req.AudioOnly, req.TranscodeToMP3)

	job, err := r.begin(model.JobKindDownload, req.URL)
	if err != nil {
		return nil, err
	}

	go r.run(job, StatusDownloading, func(ctx context.Context, rep *jobReporter) Outcome {
		params := model.DownloadParams{
			URL:            req.URL,
			Format:         spec,
			OutputTemplate: OutputTemplate(req.DestinationDir),
			OnProgress: func(p model.Progress) {
				rep.progress(p.Percent())
			},
		}

		result, err := r.engine.Download(ctx, params)
		if err != nil {
			return Outcome{Kind: model.JobKindDownload, Err: &EngineError{Kind: model.JobKindDownload, Cause: err}}
		}
		if result == nil {
			result = &model.DownloadSuccess{}
		}
		if result.URL == "" {
			result.URL = req.URL
		}
		if result.DestinationDir == "" {
			result.DestinationDir = req.DestinationDir
		}
		return Outcome{Kind: model.JobKindDownload, Download: result}
	})
	return job, nil
}

// begin claims the single job slot
func (r *Runner) begin(kind model.JobKind, url string) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != model.JobStateIdle {
		return nil, ErrJobInProgress
	}

	job := &Job{
		ID:        generateJobID(),
		Kind:      kind,
		URL:       url,
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
	r.state = model.JobStateRunning
	r.current = job
	return job, nil
}

// run is the worker body. The deferred block clears busy state and returns the
// runner to idle on every exit path, panics included.
func (r *Runner) run(job *Job, status string, work func(context.Context, *jobReporter) Outcome) {
	rep := newJobReporter(r.reporter)
	log := r.log.WithFields(logrus.Fields{
		"job_id": job.ID,
		"kind":   job.Kind,
		"url":    job.URL,
	})

	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("job panicked")
			r.finish(job, rep, Outcome{
				Kind: job.Kind,
				Err:  &EngineError{Kind: job.Kind, Cause: fmt.Errorf("unexpected panic: %v", p)},
			})
		}

		rep.setBusy(false)
		if job.Kind == model.JobKindInfo {
			rep.setStatusText(StatusReady)
		}

		r.mu.Lock()
		r.state = model.JobStateIdle
		r.current = nil
		r.mu.Unlock()

		log.WithField("elapsed", time.Since(job.StartedAt).String()).Debug("runner idle")
		close(job.done)
	}()

	log.Info("job started")
	rep.setBusy(true)
	rep.setStatusText(status)

	r.finish(job, rep, work(r.ctx, rep))
}

// finish records the terminal state and reports the outcome exactly once
func (r *Runner) finish(job *Job, rep *jobReporter, outcome Outcome) {
	state := model.JobStateSucceeded
	if outcome.Err != nil {
		state = model.JobStateFailed
	}

	r.mu.Lock()
	if job.finished {
		r.mu.Unlock()
		return
	}
	job.finished = true
	job.outcome = outcome
	r.state = state
	r.mu.Unlock()

	rep.report(terminalStatus(job.Kind, outcome), outcome)
}

func terminalStatus(kind model.JobKind, outcome Outcome) string {
	if kind != model.JobKindDownload {
		return ""
	}
	if outcome.Err != nil {
		return StatusDownloadFailed
	}
	return StatusDownloadCompleted
}

// generateJobID generates a time-ordered job ID
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
