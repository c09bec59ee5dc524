// Package reconcile correlates the two telemetry feeds of a device into a
// single joined table. The portal export and the report table describe the
// same physical transmissions with different shapes and clock resolutions,
// so rows are matched on a composite key of the minute-truncated timestamp
// and the trimmed accelerometer status string.
//
// The join is inner: rows present in only one feed are counted, logged, and
// dropped. The portal feed is deduplicated to the first occurrence per key
// before matching.
package reconcile

import (
	"strings"

	"github.com/agentstation/utc"

	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/schema"
	"github.com/agristack/fieldscope/pkg/telemetry"
	"github.com/agristack/fieldscope/pkg/timestamps"
)

// Column suffixes applied when the two feeds carry a column of the same
// name. Both sides are suffixed so neither silently shadows the other.
const (
	SuffixReport = "_report"
	SuffixPortal = "_portal"
)

// Stats describes what the correlator did with the two feeds.
type Stats struct {
	// PortalRows is the portal row count before deduplication.
	PortalRows int
	// ReportRows is the report row count.
	ReportRows int
	// PortalDeduped is the number of duplicate portal rows discarded.
	PortalDeduped int
	// Matched is the number of joined output rows.
	Matched int
	// UnmatchedPortal is the number of deduplicated portal rows that no
	// report row matched, including rows with unparsable timestamps.
	UnmatchedPortal int
	// UnmatchedReport is the number of report rows that no portal row
	// matched, including rows with unparsable timestamps.
	UnmatchedReport int
}

// mergeKey identifies one physical transmission across both feeds.
type mergeKey struct {
	minute string
	acc    string
}

// Join inner-joins the portal export against the report table on the
// composite merge key and returns the joined table with a TimestampRounded
// column floored to the hour. Colliding column names are suffixed on both
// sides. A join with zero matches is an empty-result error.
func Join(portal, report *telemetry.Table) (*telemetry.Table, Stats, error) {
	stats := Stats{PortalRows: portal.Len(), ReportRows: report.Len()}

	portalKeys := make(map[mergeKey]telemetry.Row, portal.Len())
	for _, row := range portal.Rows() {
		key, ok := portalKey(row)
		if !ok {
			stats.UnmatchedPortal++
			continue
		}
		if _, dup := portalKeys[key]; dup {
			stats.PortalDeduped++
			continue
		}
		portalKeys[key] = row
	}

	reportCols, portalCols, collisions := alignColumns(report, portal)
	columns := make([]string, 0, len(reportCols)+len(portalCols)+1)
	columns = append(columns, reportCols...)
	columns = append(columns, schema.ColTimestampRounded)
	columns = append(columns, portalCols...)

	joined := telemetry.NewTable(columns...)
	matched := make(map[mergeKey]bool, len(portalKeys))
	for _, row := range report.Rows() {
		key, instant, ok := reportKey(row)
		if !ok {
			stats.UnmatchedReport++
			continue
		}
		portalRow, found := portalKeys[key]
		if !found {
			stats.UnmatchedReport++
			continue
		}
		matched[key] = true
		joined.Append(mergeRows(row, portalRow, instant, collisions))
	}
	stats.Matched = joined.Len()
	stats.UnmatchedPortal += len(portalKeys) - len(matched)

	logging.Debug().
		Int("portal_rows", stats.PortalRows).
		Int("report_rows", stats.ReportRows).
		Int("portal_deduped", stats.PortalDeduped).
		Int("matched", stats.Matched).
		Int("unmatched_portal", stats.UnmatchedPortal).
		Int("unmatched_report", stats.UnmatchedReport).
		Msg("feeds correlated")

	if joined.Empty() {
		return nil, stats, &errors.EmptyResultError{
			Stage:   "reconcile",
			Message: "no rows matched between the portal and report feeds",
		}
	}
	return joined, stats, nil
}

// portalKey builds the merge key from a portal row. The portal timestamp
// carries no layout hint; every known layout is tried.
func portalKey(row telemetry.Row) (mergeKey, bool) {
	raw, _ := row[schema.ColPortalTime].Text()
	t, ok := timestamps.Normalize(raw, "")
	if !ok {
		return mergeKey{}, false
	}
	acc, _ := row[schema.ColPortalAcc].Text()
	return mergeKey{minute: timestamps.Key(t), acc: strings.TrimSpace(acc)}, true
}

// reportKey builds the merge key from a report row and returns the
// minute-truncated instant for the rounded timestamp column.
func reportKey(row telemetry.Row) (mergeKey, utc.Time, bool) {
	raw, _ := row[schema.ColLogDate].Text()
	t, ok := timestamps.Normalize(raw, constants.ReportTimeLayout)
	if !ok {
		return mergeKey{}, utc.Time{}, false
	}
	acc, _ := row[schema.ColAcc].Text()
	return mergeKey{minute: timestamps.Key(t), acc: strings.TrimSpace(acc)}, t, true
}

// alignColumns computes the joined column layout. The report feed's columns
// lead, the portal feed's follow with its key helper columns removed, and
// names carried by both feeds are suffixed on both sides.
func alignColumns(report, portal *telemetry.Table) (reportCols, portalCols []string, collisions map[string]bool) {
	kept := make([]string, 0, len(portal.Columns()))
	for _, col := range portal.Columns() {
		if col != schema.ColPortalTime && col != schema.ColPortalAcc {
			kept = append(kept, col)
		}
	}

	inPortal := make(map[string]bool, len(kept))
	for _, col := range kept {
		inPortal[col] = true
	}

	collisions = make(map[string]bool)
	reportCols = make([]string, 0, len(report.Columns()))
	for _, col := range report.Columns() {
		if inPortal[col] {
			collisions[col] = true
			reportCols = append(reportCols, col+SuffixReport)
		} else {
			reportCols = append(reportCols, col)
		}
	}

	portalCols = make([]string, 0, len(kept))
	for _, col := range kept {
		if collisions[col] {
			portalCols = append(portalCols, col+SuffixPortal)
		} else {
			portalCols = append(portalCols, col)
		}
	}
	return reportCols, portalCols, collisions
}

// mergeRows combines one matched pair into a joined row. The rounded
// timestamp is the merge instant floored to the hour.
func mergeRows(report, portal telemetry.Row, instant utc.Time, collisions map[string]bool) telemetry.Row {
	out := make(telemetry.Row, len(report)+len(portal)+1)
	for col, v := range report {
		if collisions[col] {
			col += SuffixReport
		}
		out[col] = v
	}
	for col, v := range portal {
		if col == schema.ColPortalTime || col == schema.ColPortalAcc {
			continue
		}
		if collisions[col] {
			col += SuffixPortal
		}
		out[col] = v
	}
	out[schema.ColTimestampRounded] = telemetry.Time(timestamps.FloorHour(instant))
	return out
}
