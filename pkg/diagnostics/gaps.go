package diagnostics

import (
	"strings"
	"time"

	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/schema"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// SynthesizeGaps reconstructs the transmissions lost during low-bandwidth
// blackouts. A gap opens at a record whose connectivity status is "2G" and
// whose rounded-timestamp delta exceeds the threshold; the number of lost
// transmissions is floor((delta - threshold) / threshold). Each synthetic
// row carries only a TimestampRounded, advanced from the gap start in
// threshold steps, with every other field null.
//
// Output is capped at MaxSyntheticRows per invocation. A table without the
// status or delta column yields an empty result with an advisory.
func SynthesizeGaps(t *telemetry.Table, thresholdSeconds int) *telemetry.Table {
	out := t.WithRows(nil)
	for _, col := range []string{schema.ColStatus, schema.ColDeltaSecondsTS, schema.ColTimestampRounded} {
		if !t.HasColumn(col) {
			logging.Warn().
				Str("column", col).
				Msg("gap synthesis column not found, no rows synthesized")
			return out
		}
	}

	threshold := float64(thresholdSeconds)
	step := time.Duration(thresholdSeconds) * time.Second
	capped := false

	for _, row := range t.Rows() {
		if out.Len() >= constants.MaxSyntheticRows {
			capped = true
			break
		}

		status, ok := row[schema.ColStatus].Text()
		if !ok || strings.TrimSpace(status) != constants.LowBandwidthStatus {
			continue
		}
		delta, ok := row[schema.ColDeltaSecondsTS].Float()
		if !ok || delta <= threshold {
			continue
		}
		start, ok := row[schema.ColTimestampRounded].Instant()
		if !ok {
			continue
		}

		missing := int((delta - threshold) / threshold)
		for i := 1; i <= missing; i++ {
			if out.Len() >= constants.MaxSyntheticRows {
				capped = true
				break
			}
			synthetic := telemetry.Row{
				schema.ColTimestampRounded: telemetry.Time(start.Add(time.Duration(i) * step)),
			}
			out.Append(synthetic)
		}
	}

	if capped {
		logging.Warn().
			Int("limit", constants.MaxSyntheticRows).
			Msg("synthetic row cap reached, gap reconstruction truncated")
	}
	if out.Len() > 0 {
		logging.Debug().
			Int("rows", out.Len()).
			Msg("synthesized rows for connectivity blackouts")
	}
	return out
}
