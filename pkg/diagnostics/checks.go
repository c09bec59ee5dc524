package diagnostics

import (
	"strings"

	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/schema"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// Check names of the built-in battery.
const (
	CheckLowBattery         = "Low Battery"
	CheckLowSignal          = "Low Signal"
	CheckDefect             = "Defect"
	CheckMalfunction        = "Malfunction"
	CheckMainboardHumidity  = "Mainboard Humidity"
	CheckSoilSensorHumidity = "Soil Sensor Humidity"
	CheckAccelerometer      = "Accelerometer Alert"
	CheckLogData            = "Log Data"
	CheckDuplicateData      = "Duplicate Data"
	CheckMissedData         = "Missed Data"
)

// Check is one named diagnostic over the reconciled table.
type Check struct {
	// Name identifies the check in the registry and in summary rows.
	Name string
	// Label is the human-readable description attached to the result.
	Label string

	run     func(*telemetry.Table) *telemetry.Table
	orderBy string
}

// Run executes the check and returns the matched subset, ordered descending
// by the check's timestamp column, together with the result label.
func (c Check) Run(t *telemetry.Table) (*telemetry.Table, string) {
	return telemetry.SortByTimestamp(c.run(t), c.orderBy, false), c.Label
}

// Registry returns the built-in check battery with the given gap threshold
// wired into the missed-data synthesizer.
func Registry(gapThresholdSeconds int) []Check {
	return []Check{
		{
			Name:    CheckLowBattery,
			Label:   "battery voltage below healthy bound",
			run:     numericBelow(schema.ColBat, constants.LowBatteryVolts),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckLowSignal,
			Label:   "GSM signal strength below healthy bound",
			run:     numericBelow(schema.ColPWR, constants.LowSignalDBm),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckDefect,
			Label:   "nonzero defect code reported",
			run:     numericNotEqual(schema.ColDefectCode, 0),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckMalfunction,
			Label:   "malfunction state reported",
			run:     textNotEqual(schema.ColMalfunction, constants.HealthyMalfunctionCode),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckMainboardHumidity,
			Label:   "main board PCB humidity above alert bound",
			run:     numericAbove(schema.ColMainboardHumidity, constants.HumidityAlertPercent),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckSoilSensorHumidity,
			Label:   "soil moisture sensor PCB humidity above alert bound",
			run:     numericAbove(schema.ColSoilSensorHumidity, constants.HumidityAlertPercent),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckAccelerometer,
			Label:   "accelerometer reading without the healthy prefix",
			run:     textWithoutPrefix(schema.ColAcc, constants.HealthyAccelerometerPrefix),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckLogData,
			Label:   "device entered log transfer mode",
			run:     textContainsFold(schema.ColStatus, "log"),
			orderBy: schema.ColLogDate,
		},
		{
			Name:    CheckDuplicateData,
			Label:   "records sharing an exact log timestamp",
			run:     duplicatesBy(schema.ColLogDate),
			orderBy: schema.ColLogDate,
		},
		{
			Name:  CheckMissedData,
			Label: "reconstructed transmissions lost to connectivity blackouts",
			run: func(t *telemetry.Table) *telemetry.Table {
				return SynthesizeGaps(t, gapThresholdSeconds)
			},
			orderBy: schema.ColTimestampRounded,
		},
	}
}

// All returns the built-in check battery with the default gap threshold.
func All() []Check {
	return Registry(constants.GapThresholdSeconds)
}

// ByName looks a check up in the given battery by exact name.
func ByName(checks []Check, name string) (Check, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Names returns the check names of a battery in registry order.
func Names(checks []Check) []string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	return names
}

// passthrough logs the missing-column advisory and hands the input back
// unfiltered.
func passthrough(t *telemetry.Table, column string) *telemetry.Table {
	logging.Warn().
		Str("column", column).
		Msg("check column not found, returning input unfiltered")
	return t
}

func numericBelow(column string, bound float64) func(*telemetry.Table) *telemetry.Table {
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		return t.Filter(func(row telemetry.Row) bool {
			f, ok := row[column].Float()
			return ok && f < bound
		})
	}
}

func numericAbove(column string, bound float64) func(*telemetry.Table) *telemetry.Table {
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		return t.Filter(func(row telemetry.Row) bool {
			f, ok := row[column].Float()
			return ok && f > bound
		})
	}
}

func numericNotEqual(column string, healthy float64) func(*telemetry.Table) *telemetry.Table {
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		return t.Filter(func(row telemetry.Row) bool {
			f, ok := row[column].Float()
			return ok && f != healthy
		})
	}
}

func textNotEqual(column, healthy string) func(*telemetry.Table) *telemetry.Table {
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		return t.Filter(func(row telemetry.Row) bool {
			s, ok := row[column].Text()
			return ok && strings.TrimSpace(s) != healthy
		})
	}
}

func textWithoutPrefix(column, prefix string) func(*telemetry.Table) *telemetry.Table {
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		return t.Filter(func(row telemetry.Row) bool {
			s, ok := row[column].Text()
			return ok && !strings.HasPrefix(strings.TrimSpace(s), prefix)
		})
	}
}

func textContainsFold(column, needle string) func(*telemetry.Table) *telemetry.Table {
	needle = strings.ToLower(needle)
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		return t.Filter(func(row telemetry.Row) bool {
			s, ok := row[column].Text()
			return ok && strings.Contains(strings.ToLower(s), needle)
		})
	}
}

// duplicatesBy keeps every record after the first of each group sharing an
// exact cell value in the given column. Null cells never group.
func duplicatesBy(column string) func(*telemetry.Table) *telemetry.Table {
	return func(t *telemetry.Table) *telemetry.Table {
		if !t.HasColumn(column) {
			return passthrough(t, column)
		}
		seen := make(map[string]bool, t.Len())
		return t.Filter(func(row telemetry.Row) bool {
			s, ok := row[column].Text()
			if !ok {
				return false
			}
			if seen[s] {
				return true
			}
			seen[s] = true
			return false
		})
	}
}
