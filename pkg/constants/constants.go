// Package constants provides shared constants used throughout the fieldscope
// codebase. This includes diagnostic thresholds, timestamp layouts, limits,
// and other configuration values that should be consistent across the
// application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to feed endpoints
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultFetchTimeout is the timeout for fetching both feeds of a device
	DefaultFetchTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// Diagnostic thresholds shared by the check battery
const (
	// LowBatteryVolts is the exclusive lower bound for a healthy battery reading
	LowBatteryVolts = 3.60

	// LowSignalDBm is the exclusive lower bound for a healthy GSM signal reading
	LowSignalDBm = -90.0

	// HumidityAlertPercent is the exclusive upper bound for PCB humidity readings
	HumidityAlertPercent = 60.0

	// HealthyAccelerometerPrefix marks an accelerometer reading with no alert
	HealthyAccelerometerPrefix = "[OK]"

	// HealthyMalfunctionCode is the malfunction field value of a healthy record
	HealthyMalfunctionCode = "0_0"

	// LowBandwidthStatus is the connectivity mode that gates gap synthesis
	LowBandwidthStatus = "2G"
)

// Gap synthesis limits
const (
	// GapThresholdSeconds is the expected maximum spacing between consecutive
	// records; larger spacing counts as a connectivity blackout
	GapThresholdSeconds = 3600

	// MaxSyntheticRows caps synthetic row generation per invocation,
	// bounding memory against pathological multi-year gaps
	MaxSyntheticRows = 5000
)

// Timestamp layouts (Go reference-time notation)
const (
	// ReportTimeLayout is the layout of the report feed's LogDate field
	ReportTimeLayout = "02/01/2006 15:04:05"

	// DisplayTimeLayout is the canonical display layout of the primary log timestamp
	DisplayTimeLayout = "02/01/2006 15:04:05"

	// KeyTimeLayout is the minute-resolution layout used for merge keys
	KeyTimeLayout = "2006-01-02 15:04"

	// BoundsTimeLayout is the layout of start/end date bound inputs
	BoundsTimeLayout = "2006-01-02 15:04:05"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
