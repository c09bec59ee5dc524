package diagnostics

import (
	"fmt"

	"github.com/agristack/fieldscope/pkg/telemetry"
)

// RateUnavailable is the rate rendered when a summary has no records to
// rate against.
const RateUnavailable = "N/A"

// SummaryRow is one line of the per-check summary: how many records a check
// matched out of the reconciled total.
type SummaryRow struct {
	DeviceID string `json:"device_id" yaml:"device_id"`
	Check    string `json:"check"     yaml:"check"`
	Matched  int    `json:"matched"   yaml:"matched"`
	Total    int    `json:"total"     yaml:"total"`
	// Rate is the matched percentage, or "N/A" when the total is zero.
	Rate string `json:"rate" yaml:"rate"`
}

// Summarize runs each check over the table and aggregates one SummaryRow
// per check, in the order given.
func Summarize(deviceID string, t *telemetry.Table, checks ...Check) []SummaryRow {
	rows := make([]SummaryRow, 0, len(checks))
	for _, check := range checks {
		subset, _ := check.Run(t)
		rows = append(rows, SummaryRow{
			DeviceID: deviceID,
			Check:    check.Name,
			Matched:  subset.Len(),
			Total:    t.Len(),
			Rate:     rate(subset.Len(), t.Len()),
		})
	}
	return rows
}

func rate(matched, total int) string {
	if total == 0 {
		return RateUnavailable
	}
	return fmt.Sprintf("%.2f%%", float64(matched)/float64(total)*100)
}
