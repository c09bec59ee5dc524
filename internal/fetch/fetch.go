// Package fetch runs the two-feed retrieval in the background. A Task
// fetches both feeds of a device in one goroutine and delivers exactly one
// outcome on a one-shot channel; the caller can cancel it at any point.
package fetch

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agristack/fieldscope/internal/sources"
	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// Outcome is the single result of a fetch task: both materialized tables,
// or the first failure.
type Outcome struct {
	Portal *telemetry.Table
	Report *telemetry.Table
	Err    error
}

// Task is one background fetch of a device's feed pair.
type Task struct {
	pair    sources.Pair
	timeout time.Duration

	done   chan Outcome
	cancel context.CancelFunc
}

// Start launches the fetch in a goroutine. The task observes the given
// context and its own timeout; Stop cancels it early.
func Start(ctx context.Context, pair sources.Pair, timeout time.Duration) *Task {
	if timeout <= 0 {
		timeout = constants.DefaultFetchTimeout
	}

	taskCtx, cancel := context.WithTimeout(ctx, timeout)
	t := &Task{
		pair:    pair,
		timeout: timeout,
		done:    make(chan Outcome, 1),
		cancel:  cancel,
	}

	go func() {
		defer cancel()
		t.done <- t.run(taskCtx)
	}()
	return t
}

func (t *Task) run(ctx context.Context) Outcome {
	started := time.Now()
	if err := t.pair.Fetch(ctx); err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return Outcome{Err: &errors.TimeoutError{
				Operation: "fetch",
				Duration:  t.timeout.String(),
				Message:   "feed retrieval did not finish in time",
			}}
		}
		return Outcome{Err: err}
	}

	logging.Debug().
		Dur("elapsed", time.Since(started)).
		Int("portal_rows", t.pair.Portal.Table().Len()).
		Int("report_rows", t.pair.Report.Table().Len()).
		Msg("feed pair fetched")
	return Outcome{
		Portal: t.pair.Portal.Table(),
		Report: t.pair.Report.Table(),
	}
}

// Wait blocks until the task delivers its outcome or the given context is
// done, whichever comes first. The outcome is delivered at most once.
func (t *Task) Wait(ctx context.Context) Outcome {
	select {
	case out := <-t.done:
		return out
	case <-ctx.Done():
		t.cancel()
		return Outcome{Err: errors.ErrCanceled}
	}
}

// Stop cancels the task. A stopped task still delivers an outcome; callers
// waiting on it observe the cancellation error.
func (t *Task) Stop() {
	t.cancel()
}
