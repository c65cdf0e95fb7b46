package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const defaultPollInterval = time.Second

// Options controls which assistant answers and how long the runner waits for it.
type Options struct {
	AssistantID  string
	PollInterval time.Duration
	// MaxPolls caps status fetches per job. Zero means no cap.
	MaxPolls int
	// Timeout caps the wall time spent waiting for a job. Zero means no cap.
	Timeout time.Duration
}

// Runner drives one remote assistant job per call from submission to answer.
type Runner struct {
	backend Backend
	opts    Options
	log     *slog.Logger
}

// NewRunner builds a runner against backend.
func NewRunner(backend Backend, opts Options, log *slog.Logger) (*Runner, error) {
	if backend == nil {
		return nil, errors.New("assistant backend required")
	}
	if opts.AssistantID == "" {
		return nil, errors.New("assistant id required")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{backend: backend, opts: opts, log: log}, nil
}

// Run submits text, waits for the job to complete and returns the answer.
// A nil error always comes with a non-empty answer.
func (r *Runner) Run(ctx context.Context, text string) (string, error) {
	start := time.Now()
	job, err := r.Submit(ctx, text)
	if err != nil {
		return "", err
	}
	job, err = r.AwaitCompletion(ctx, job)
	if err != nil {
		return "", err
	}
	answer, err := r.ReadAnswer(ctx, job)
	if err != nil {
		return "", err
	}
	r.log.Info("assistant answered", "job_id", job.ID, "duration_ms", time.Since(start).Milliseconds())
	return answer, nil
}

// Submit opens a new conversation holding text as a single user message and starts a job on it.
// Empty text is submitted as is.
func (r *Runner) Submit(ctx context.Context, text string) (Job, error) {
	job, err := r.backend.Submit(ctx, r.opts.AssistantID, text)
	if err != nil {
		return Job{}, fmt.Errorf("submit job: %w", err)
	}
	r.log.Debug("job submitted", "job_id", job.ID, "thread_id", job.ThreadID, "status", job.Status)
	return job, nil
}

// AwaitCompletion re-fetches job every poll interval until the backend reports a terminal status.
// Anything other than completed is returned as a *JobError. requires_action also stops the
// loop since the runner never supplies tool outputs.
func (r *Runner) AwaitCompletion(ctx context.Context, job Job) (Job, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	for attempt := 1; !job.Status.Terminal() && job.Status != StatusRequiresAction; attempt++ {
		if r.opts.MaxPolls > 0 && attempt > r.opts.MaxPolls {
			return job, fmt.Errorf("%w: job %s still %s after %d polls", ErrPollLimit, job.ID, job.Status, r.opts.MaxPolls)
		}

		select {
		case <-ctx.Done():
			r.log.Warn("stopped waiting for job", "job_id", job.ID, "status", job.Status, "err", ctx.Err())
			return job, ctx.Err()
		case <-time.After(r.opts.PollInterval):
		}

		next, err := r.backend.Fetch(ctx, job)
		if err != nil {
			return job, fmt.Errorf("fetch job %s: %w", job.ID, err)
		}
		job = next
		r.log.Debug("job polled", "job_id", job.ID, "attempt", attempt, "status", job.Status)
	}

	if job.Status != StatusCompleted {
		return job, &JobError{JobID: job.ID, Status: job.Status, Message: job.LastError}
	}
	return job, nil
}

// ReadAnswer returns the text of the newest message in a completed job's conversation.
func (r *Runner) ReadAnswer(ctx context.Context, job Job) (string, error) {
	if job.Status != StatusCompleted {
		return "", fmt.Errorf("%w: job %s is %s", ErrNotCompleted, job.ID, job.Status)
	}
	msgs, err := r.backend.Messages(ctx, job)
	if err != nil {
		return "", fmt.Errorf("list messages for job %s: %w", job.ID, err)
	}
	if len(msgs) == 0 {
		return "", ErrNoMessages
	}
	if strings.TrimSpace(msgs[0].Text) == "" {
		return "", ErrEmptyAnswer
	}
	return msgs[0].Text, nil
}
