package fieldscope

import (
	"github.com/agristack/fieldscope/pkg/diagnostics"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/reconcile"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// Session holds one reconciled telemetry stream and the check battery bound
// to it. The canonical table is immutable for the session's lifetime;
// checks read it and may run in any order.
type Session struct {
	deviceID string
	table    *telemetry.Table
	stats    reconcile.Stats
	checks   []diagnostics.Check
}

// DeviceID returns the device identifier the session was built for.
func (s *Session) DeviceID() string {
	return s.deviceID
}

// Table returns the canonical reconciled table.
func (s *Session) Table() *telemetry.Table {
	return s.table
}

// Stats returns the correlation counters of the underlying join.
func (s *Session) Stats() reconcile.Stats {
	return s.stats
}

// Checks returns the names of the available checks in registry order.
func (s *Session) Checks() []string {
	return diagnostics.Names(s.checks)
}

// Check runs the named check and returns the matched subset together with
// its human-readable label. An unknown name is a validation error.
func (s *Session) Check(name string) (*telemetry.Table, string, error) {
	check, ok := diagnostics.ByName(s.checks, name)
	if !ok {
		return nil, "", errors.NewValidationError("check", name, "unknown check name")
	}
	subset, label := check.Run(s.table)
	return subset, label, nil
}

// Summary runs the named checks and aggregates one summary row per check.
// With no names, the full battery runs in registry order.
func (s *Session) Summary(names ...string) ([]diagnostics.SummaryRow, error) {
	checks := s.checks
	if len(names) > 0 {
		checks = make([]diagnostics.Check, 0, len(names))
		for _, name := range names {
			check, ok := diagnostics.ByName(s.checks, name)
			if !ok {
				return nil, errors.NewValidationError("check", name, "unknown check name")
			}
			checks = append(checks, check)
		}
	}
	return diagnostics.Summarize(s.deviceID, s.table, checks...), nil
}
