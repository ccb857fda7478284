// Package remotejob waits on long-running server-side jobs by polling
// their status to a terminal state.
package remotejob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/stashgrab/pkg/stash"
)

// JobAPI is the slice of the catalog API the job client needs.
type JobAPI interface {
	FindJob(ctx context.Context, id string) (*stash.Job, error)
	StopJob(ctx context.Context, id string) error
}

// StartFunc starts a server-side operation and returns the job id
// tracking it.
type StartFunc func(ctx context.Context) (string, error)

// WaitOptions controls the polling loop.
type WaitOptions struct {
	// PollInterval is the delay between status polls.
	PollInterval time.Duration

	// MaxWait is the total budget. A zero or negative budget times out
	// immediately; the job is still asked to stop.
	MaxWait time.Duration
}

// DefaultWaitOptions matches the server's typical scan/identify pacing.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{PollInterval: time.Second, MaxWait: 2 * time.Minute}
}

// Result is the outcome of waiting on a job. A timeout means "unknown
// final state, assume not completed" - never success.
type Result struct {
	Success  bool
	TimedOut bool
	JobID    string
	Error    string
}

// Client polls server-side jobs to completion.
type Client struct {
	api   JobAPI
	clock Clock
	log   *slog.Logger
}

// New creates a job client. A nil clock uses the wall clock.
func New(api JobAPI, clock Clock, log *slog.Logger) *Client {
	if clock == nil {
		clock = RealClock()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{api: api, clock: clock, log: log}
}

// RunAndWait starts a job and polls until it reaches a terminal state or
// the wait budget runs out. On timeout it issues an explicit stop request
// and reports failure.
func (c *Client) RunAndWait(ctx context.Context, start StartFunc, opts WaitOptions) Result {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}

	jobID, err := start(ctx)
	if err != nil {
		return Result{Error: fmt.Sprintf("start job: %v", err)}
	}
	c.log.Debug("job started", "job_id", jobID)

	return c.Wait(ctx, jobID, opts)
}

// Wait polls an already-started job to a terminal state.
func (c *Client) Wait(ctx context.Context, jobID string, opts WaitOptions) Result {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	deadline := c.clock.Now().Add(opts.MaxWait)

	for {
		if !c.clock.Now().Before(deadline) {
			return c.timeout(ctx, jobID, opts.MaxWait)
		}

		job, err := c.api.FindJob(ctx, jobID)
		if err != nil {
			if errors.Is(err, stash.ErrNotFound) {
				// The job finished before we could observe it and the
				// server recycled the slot. Optimistic success.
				c.log.Debug("job no longer tracked, assuming finished", "job_id", jobID)
				return Result{Success: true, JobID: jobID}
			}
			// Transient poll failure. Keep polling until the budget runs out.
			c.log.Warn("job poll failed", "job_id", jobID, "error", err)
		} else {
			switch job.Status {
			case stash.JobStatusFinished:
				return Result{Success: true, JobID: jobID}
			case stash.JobStatusFailed:
				reason := job.Error
				if reason == "" {
					reason = "job failed"
				}
				return Result{JobID: jobID, Error: reason}
			case stash.JobStatusCancelled:
				return Result{JobID: jobID, Error: "job was cancelled"}
			}
			if job.Progress != nil {
				c.log.Debug("job running", "job_id", jobID, "status", job.Status, "progress", *job.Progress)
			}
		}

		select {
		case <-ctx.Done():
			return Result{JobID: jobID, TimedOut: true, Error: fmt.Sprintf("wait aborted: %v", ctx.Err())}
		case <-c.clock.After(opts.PollInterval):
		}
	}
}

// timeout stops the job and reports a timeout failure.
func (c *Client) timeout(ctx context.Context, jobID string, budget time.Duration) Result {
	c.log.Warn("job wait budget exceeded, stopping job", "job_id", jobID, "budget", budget)
	if err := c.api.StopJob(ctx, jobID); err != nil {
		c.log.Warn("stop job failed", "job_id", jobID, "error", err)
	}
	return Result{
		JobID:    jobID,
		TimedOut: true,
		Error:    fmt.Sprintf("job did not finish within %s", budget),
	}
}
