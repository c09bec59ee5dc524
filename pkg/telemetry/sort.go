package telemetry

import (
	"sort"

	"github.com/agentstation/utc"

	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/timestamps"
)

// SortByTimestamp stably sorts the table by the named timestamp-bearing
// column, descending unless ascending is set. String cells are parsed with
// the known layouts; null and unparsable cells sort last in either
// direction. A table without the named column is returned unchanged with an
// advisory log event — sorting never fails.
func SortByTimestamp(t *Table, column string, ascending bool) *Table {
	if !t.HasColumn(column) {
		logging.Warn().
			Str("column", column).
			Msg("sort column not found, returning input unchanged")
		return t
	}

	type sortKey struct {
		ts utc.Time
		ok bool
	}

	rows := t.Rows()
	keys := make([]sortKey, len(rows))
	order := make([]int, len(rows))
	for i, row := range rows {
		order[i] = i
		keys[i] = sortKey{}
		cell := row[column]
		switch cell.Kind() {
		case KindTime:
			ts, _ := cell.Instant()
			keys[i] = sortKey{ts: ts, ok: true}
		case KindString:
			if ts, ok := timestamps.Parse(cell.String(), ""); ok {
				keys[i] = sortKey{ts: ts, ok: true}
			}
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		switch {
		case ka.ok && !kb.ok:
			return true // parsable rows before unparsable/null
		case !ka.ok:
			return false
		case ascending:
			return ka.ts.Before(kb.ts)
		default:
			return kb.ts.Before(ka.ts)
		}
	})

	sorted := make([]Row, len(rows))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}
	return t.WithRows(sorted)
}
