// Package diagnostics runs the check battery over a reconciled telemetry
// table: elapsed-time columns, a registry of named filter checks, synthetic
// gap reconstruction, and the per-check summary aggregation.
//
// Checks are pure table-to-table functions. A check never mutates its input
// rows and never fails: a missing required column degrades to an unfiltered
// pass-through with an advisory log event.
package diagnostics

import (
	"github.com/agentstation/utc"

	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/schema"
	"github.com/agristack/fieldscope/pkg/telemetry"
	"github.com/agristack/fieldscope/pkg/timestamps"
)

// AddDeltas derives both elapsed-seconds columns on the table: DeltaSeconds
// from the LogDate ordering and DeltaSeconds_TS from the TimestampRounded
// ordering. Within each ordering, records are walked newest-first and each
// record carries the absolute seconds elapsed toward its newer neighbor, so
// the older record of a gap is the one that reports it. The newest record's
// delta is 0. Rows whose timestamp does not parse get a null delta.
func AddDeltas(t *telemetry.Table) *telemetry.Table {
	addDelta(t, schema.ColLogDate, schema.ColDeltaSeconds)
	addDelta(t, schema.ColTimestampRounded, schema.ColDeltaSecondsTS)
	return t
}

func addDelta(t *telemetry.Table, timeCol, deltaCol string) {
	if !t.HasColumn(timeCol) {
		logging.Warn().
			Str("column", timeCol).
			Str("delta_column", deltaCol).
			Msg("ordering column not found, skipping delta derivation")
		return
	}
	t.AddColumn(deltaCol)

	// The sorted view shares the underlying row maps, so writing the delta
	// cell through it updates the table rows in place.
	sorted := telemetry.SortByTimestamp(t, timeCol, false)

	var prev utc.Time
	havePrev := false
	for _, row := range sorted.Rows() {
		ts, ok := cellInstant(row[timeCol])
		if !ok {
			row[deltaCol] = telemetry.Null()
			continue
		}
		if !havePrev {
			row[deltaCol] = telemetry.Number(0)
		} else {
			elapsed := prev.Sub(ts).Seconds()
			if elapsed < 0 {
				elapsed = -elapsed
			}
			row[deltaCol] = telemetry.Number(elapsed)
		}
		prev, havePrev = ts, true
	}
}

// cellInstant resolves a cell to a UTC instant, parsing string cells with
// the known layouts.
func cellInstant(v telemetry.Value) (utc.Time, bool) {
	if ts, ok := v.Instant(); ok {
		return ts, true
	}
	if raw, ok := v.Text(); ok {
		return timestamps.Parse(raw, "")
	}
	return utc.Time{}, false
}
