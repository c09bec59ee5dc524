// Package schema normalizes the shape of the joined telemetry table: it
// decomposes the composite GSM info field, projects columns onto the
// versioned allow-list schema, and reformats display fields. Every step
// tolerates missing input columns and degrades with an advisory log event
// instead of failing.
package schema

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/goccy/go-yaml"
)

// Well-known column names shared across pipeline stages.
const (
	// ColLogDate is the primary log timestamp of the report feed.
	ColLogDate = "LogDate"
	// ColCreatedOn is the report feed's record creation timestamp.
	ColCreatedOn = "CreatedOn"
	// ColTimestampRounded is the join timestamp floored to the hour.
	ColTimestampRounded = "TimestampRounded"
	// ColAcc is the accelerometer status string of the report feed.
	ColAcc = "Acc"
	// ColBat is the battery voltage.
	ColBat = "Bat"
	// ColStatus is the device connectivity/status field.
	ColStatus = "Status"
	// ColOperator is the GSM operator name split out of the composite field.
	ColOperator = "Operator"
	// ColPWR is the GSM signal strength in dBm split out of the composite field.
	ColPWR = "PWR"
	// ColDefectCode is the numeric defect code.
	ColDefectCode = "Defect Code"
	// ColMalfunction is the malfunction state code.
	ColMalfunction = "Malfunction"
	// ColMainboardHumidity is the main board PCB humidity percentage.
	ColMainboardHumidity = "Main Board PCB Humidity"
	// ColSoilSensorHumidity is the soil moisture sensor PCB humidity percentage.
	ColSoilSensorHumidity = "Soil Moisture Sensor PCB Humidity"
	// ColDeltaSeconds is the derived elapsed-seconds column ordered by LogDate.
	ColDeltaSeconds = "DeltaSeconds"
	// ColDeltaSecondsTS is the derived elapsed-seconds column ordered by TimestampRounded.
	ColDeltaSecondsTS = "DeltaSeconds_TS"
)

// Raw portal export column names consumed before projection.
const (
	// ColPortalTime is the portal export's raw local timestamp string.
	ColPortalTime = "Log Date (Raw)"
	// ColPortalAcc is the portal export's accelerometer status string.
	ColPortalAcc = "Accelerometer"
	// ColGSMInfo is the portal export's composite GSM info string.
	ColGSMInfo = "GSMInfo"
)

//go:embed columns.yaml
var columnsYAML []byte

// document is the shape of the embedded allow-list file.
type document struct {
	Version int      `yaml:"version"`
	Columns []string `yaml:"columns"`
}

var loadDocument = sync.OnceValue(func() document {
	var doc document
	if err := yaml.Unmarshal(columnsYAML, &doc); err != nil {
		// The allow-list ships inside the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("schema: embedded allow-list invalid: %v", err))
	}
	return doc
})

// Version returns the version of the embedded allow-list schema.
func Version() int {
	return loadDocument().Version
}

// Canonical returns the ordered allow-list of canonical output columns.
func Canonical() []string {
	return slices.Clone(loadDocument().Columns)
}
