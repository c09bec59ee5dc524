// Package timestamps normalizes the heterogeneous timestamp strings carried
// by the two telemetry feeds into comparable UTC instants.
//
// Parsing is a soft operation: an unparsable input reports ok=false and
// never produces an error. Normalized instants are truncated to minute
// resolution, which absorbs sub-minute clock jitter between the feeds when
// building merge keys.
package timestamps

import (
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agristack/fieldscope/pkg/constants"
)

// layouts are tried in order when no layout hint is supplied. The report
// feed is day-first; the portal export is ISO-flavored.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	constants.ReportTimeLayout,
	"02/01/2006 15:04",
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// Parse parses a raw timestamp string at full resolution. An empty layout
// means every known layout is tried in order. Unparsable input reports
// ok=false.
func Parse(raw, layout string) (utc.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return utc.Time{}, false
	}

	if layout != "" {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return utc.Time{}, false
		}
		return utc.New(t), true
	}

	for _, l := range layouts {
		if t, err := time.Parse(l, raw); err == nil {
			return utc.New(t), true
		}
	}
	return utc.Time{}, false
}

// Normalize parses a raw timestamp string and truncates it to minute
// resolution, the resolution merge keys are built at.
func Normalize(raw, layout string) (utc.Time, bool) {
	t, ok := Parse(raw, layout)
	if !ok {
		return utc.Time{}, false
	}
	return Minute(t), true
}

// Minute truncates an instant to minute resolution.
func Minute(t utc.Time) utc.Time {
	return utc.New(t.Truncate(time.Minute))
}

// FloorHour floors an instant to the start of its hour.
func FloorHour(t utc.Time) utc.Time {
	return utc.New(t.Truncate(time.Hour))
}

// Display renders an instant in the canonical display layout used for the
// primary log timestamp.
func Display(t utc.Time) string {
	return t.Format(constants.DisplayTimeLayout)
}

// Key renders an instant in the minute-resolution merge-key layout.
func Key(t utc.Time) string {
	return t.Format(constants.KeyTimeLayout)
}
