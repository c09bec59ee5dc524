package schema

import (
	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/telemetry"
	"github.com/agristack/fieldscope/pkg/timestamps"
)

// Project drops every column not on the allow-list and reindexes the rest
// into canonical order. The output columns are exactly the intersection of
// the allow-list and the table's columns, in allow-list order.
func Project(t *telemetry.Table) *telemetry.Table {
	allowed := Canonical()

	var dropped []string
	keep := make(map[string]bool, len(allowed))
	for _, col := range allowed {
		keep[col] = true
	}
	for _, col := range t.Columns() {
		if !keep[col] {
			dropped = append(dropped, col)
		}
	}
	if len(dropped) > 0 {
		logging.Debug().
			Strs("columns", dropped).
			Msg("dropping columns outside the allow-list")
	}

	return t.Select(allowed...)
}

// ReformatDisplay reparses the primary log timestamp from its source layout
// and re-emits it in the canonical display layout. Unparsable cells become
// null. A table without the column is returned unchanged.
func ReformatDisplay(t *telemetry.Table) *telemetry.Table {
	if !t.HasColumn(ColLogDate) {
		logging.Warn().
			Str("column", ColLogDate).
			Msg("display column not found, skipping reformat")
		return t
	}

	out := t.WithRows(nil)
	for _, row := range t.Rows() {
		formatted := row.Clone()
		raw, ok := row[ColLogDate].Text()
		if !ok {
			formatted[ColLogDate] = telemetry.Null()
		} else if ts, parsed := timestamps.Parse(raw, constants.ReportTimeLayout); parsed {
			formatted[ColLogDate] = telemetry.String(timestamps.Display(ts))
		} else {
			formatted[ColLogDate] = telemetry.Null()
		}
		out.Append(formatted)
	}
	return out
}

// Normalize runs the full projection stage: composite decomposition,
// allow-list projection, display reformat.
func Normalize(t *telemetry.Table) *telemetry.Table {
	return ReformatDisplay(Project(Decompose(t)))
}
