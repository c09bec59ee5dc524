// Package fieldscope reconciles the two telemetry feeds of a field device
// into a single canonical table and runs a diagnostic check battery over it.
//
// The portal's log export and the report service's exported table describe
// the same transmissions in different shapes. A Fieldscope instance fetches
// both, correlates them on a shared merge identity, normalizes the joined
// table onto the canonical column schema, and hands back a Session for
// running checks and summaries.
package fieldscope

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agristack/fieldscope/internal/fetch"
	"github.com/agristack/fieldscope/pkg/diagnostics"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/reconcile"
	"github.com/agristack/fieldscope/pkg/schema"
	"github.com/agristack/fieldscope/pkg/telemetry"
	"github.com/agristack/fieldscope/pkg/timestamps"
)

// Fieldscope reconciles and diagnoses one device's telemetry feeds.
type Fieldscope interface {
	// Run fetches both feeds and reconciles them into a Session.
	Run(ctx context.Context) (*Session, error)

	// Reconcile builds a Session from already-materialized feed tables.
	Reconcile(ctx context.Context, portal, report *telemetry.Table) (*Session, error)
}

// fieldscope is the internal implementation of the Fieldscope interface.
type fieldscope struct {
	config *config
	logger *zerolog.Logger
}

// New creates a new Fieldscope instance with the given options.
func New(opts ...Option) (Fieldscope, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	logger := c.logger
	if logger == nil {
		logger = logging.Default()
	}
	if c.deviceID != "" {
		l := logger.With().Str("device_id", c.deviceID).Logger()
		logger = &l
	}

	return &fieldscope{config: c, logger: logger}, nil
}

// Run fetches both feeds in the background, waits for the pair, and
// reconciles it.
func (f *fieldscope) Run(ctx context.Context) (*Session, error) {
	pair, err := f.config.sources()
	if err != nil {
		return nil, err
	}
	defer pair.Cleanup() //nolint:errcheck // feeds hold no durable state

	task := fetch.Start(ctx, pair, f.config.fetchTimeout)
	out := task.Wait(ctx)
	if out.Err != nil {
		return nil, out.Err
	}
	return f.Reconcile(ctx, out.Portal, out.Report)
}

// Reconcile runs the full pipeline over the given feed tables: correlate,
// normalize onto the canonical schema, apply date bounds, derive deltas,
// order the stream.
func (f *fieldscope) Reconcile(ctx context.Context, portal, report *telemetry.Table) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}
	if portal == nil || report == nil {
		return nil, errors.NewValidationError("feeds", nil, "both feed tables are required")
	}

	joined, stats, err := reconcile.Join(portal, report)
	if err != nil {
		return nil, err
	}

	table := schema.Normalize(joined)
	table, err = f.applyBounds(table)
	if err != nil {
		return nil, err
	}

	diagnostics.AddDeltas(table)
	table = telemetry.SortByTimestamp(table, schema.ColLogDate, false)

	f.logger.Info().
		Int("rows", table.Len()).
		Int("matched", stats.Matched).
		Int("unmatched_portal", stats.UnmatchedPortal).
		Int("unmatched_report", stats.UnmatchedReport).
		Msg("telemetry reconciled")

	return &Session{
		deviceID: f.config.deviceID,
		table:    table,
		stats:    stats,
		checks:   diagnostics.Registry(f.config.gapThresholdSeconds),
	}, nil
}

// applyBounds drops records whose log timestamp falls outside the
// configured window. Records without a parsable timestamp are dropped only
// when a window is set.
func (f *fieldscope) applyBounds(t *telemetry.Table) (*telemetry.Table, error) {
	start, end := f.config.start, f.config.end
	if start == nil && end == nil {
		return t, nil
	}

	filtered := t.Filter(func(row telemetry.Row) bool {
		raw, ok := row[schema.ColLogDate].Text()
		if !ok {
			return false
		}
		ts, ok := timestamps.Parse(raw, "")
		if !ok {
			return false
		}
		if start != nil && ts.Before(*start) {
			return false
		}
		if end != nil && ts.After(*end) {
			return false
		}
		return true
	})

	dropped := t.Len() - filtered.Len()
	if dropped > 0 {
		f.logger.Debug().
			Int("dropped", dropped).
			Msg("records outside the date bounds removed")
	}
	if filtered.Empty() {
		return nil, &errors.EmptyResultError{
			Stage:   "bounds",
			Message: "no records inside the requested date window",
		}
	}
	return filtered, nil
}
