package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agristack/fieldscope/pkg/telemetry"
)

func TestCanonicalSchema(t *testing.T) {
	cols := Canonical()
	require.NotEmpty(t, cols)
	assert.Equal(t, ColLogDate, cols[0])
	assert.Contains(t, cols, ColTimestampRounded)
	assert.Contains(t, cols, ColSoilSensorHumidity)
	assert.Equal(t, 1, Version())

	// Returned slice is a copy; mutating it must not poison the schema.
	cols[0] = "mutated"
	assert.Equal(t, ColLogDate, Canonical()[0])
}

func TestDecompose(t *testing.T) {
	tbl := telemetry.NewTable("LogDate", ColGSMInfo)
	tbl.Append(telemetry.Row{
		"LogDate":  telemetry.String("01/01/2024 10:00:00"),
		ColGSMInfo: telemetry.String("Turkcell,PWR:-85dbm,LAC:1A2B"),
	})

	out := Decompose(tbl)

	assert.False(t, out.HasColumn(ColGSMInfo), "composite column dropped")
	assert.Equal(t, []string{"LogDate", ColOperator, ColPWR, "LAC"}, out.Columns())

	assert.Equal(t, "Turkcell", out.Value(0, ColOperator).String())

	pwr, ok := out.Value(0, ColPWR).Float()
	require.True(t, ok)
	assert.Equal(t, -85.0, pwr)
	assert.Equal(t, telemetry.KindNumber, out.Value(0, ColPWR).Kind())

	assert.Equal(t, telemetry.KindString, out.Value(0, "LAC").Kind())
	assert.Equal(t, "1A2B", out.Value(0, "LAC").String())
}

func TestDecomposeInvalidSignal(t *testing.T) {
	tbl := telemetry.NewTable(ColGSMInfo)
	tbl.Append(telemetry.Row{ColGSMInfo: telemetry.String("Vodafone,PWR:weak")})
	tbl.Append(telemetry.Row{ColGSMInfo: telemetry.String("Vodafone,PWR:")})
	tbl.Append(telemetry.Row{ColGSMInfo: telemetry.Null()})

	out := Decompose(tbl)

	assert.True(t, out.Value(0, ColPWR).IsNull(), "invalid reading resolves to null")
	assert.True(t, out.Value(1, ColPWR).IsNull(), "missing reading resolves to null")
	assert.Equal(t, "", out.Value(2, ColOperator).String())
}

func TestDecomposeIgnoresTokensWithoutColon(t *testing.T) {
	tbl := telemetry.NewTable(ColGSMInfo)
	tbl.Append(telemetry.Row{ColGSMInfo: telemetry.String("Turkcell,garbage,LAC:1A2B")})

	out := Decompose(tbl)
	assert.Equal(t, []string{ColOperator, "LAC"}, out.Columns())
}

func TestDecomposeMissingColumn(t *testing.T) {
	tbl := telemetry.NewTable("LogDate")
	tbl.Append(telemetry.Row{"LogDate": telemetry.String("x")})

	assert.Same(t, tbl, Decompose(tbl), "missing composite column is a pass-through")
}

func TestProjectKeepsAllowListOrder(t *testing.T) {
	tbl := telemetry.NewTable("merge_debris", ColBat, ColLogDate, ColStatus)
	tbl.Append(telemetry.Row{
		"merge_debris": telemetry.String("x"),
		ColBat:         telemetry.Number(3.7),
		ColLogDate:     telemetry.String("01/01/2024 10:00:00"),
		ColStatus:      telemetry.String("2G"),
	})

	out := Project(tbl)

	assert.Equal(t, []string{ColLogDate, ColStatus, ColBat}, out.Columns(),
		"exactly allow-list ∩ present, in allow-list order")
	assert.True(t, out.Value(0, "merge_debris").IsNull())
}

func TestReformatDisplay(t *testing.T) {
	tbl := telemetry.NewTable(ColLogDate)
	tbl.Append(telemetry.Row{ColLogDate: telemetry.String("02/01/2024 10:30:00")})
	tbl.Append(telemetry.Row{ColLogDate: telemetry.String("not a date")})
	tbl.Append(telemetry.Row{ColLogDate: telemetry.Null()})

	out := ReformatDisplay(tbl)

	assert.Equal(t, "02/01/2024 10:30:00", out.Value(0, ColLogDate).String())
	assert.True(t, out.Value(1, ColLogDate).IsNull(), "unparsable becomes null")
	assert.True(t, out.Value(2, ColLogDate).IsNull())
}

func TestNormalizeEndToEnd(t *testing.T) {
	tbl := telemetry.NewTable(ColLogDate, ColGSMInfo, "scratch")
	tbl.Append(telemetry.Row{
		ColLogDate: telemetry.String("02/01/2024 10:30:00"),
		ColGSMInfo: telemetry.String("Turkcell,PWR:-95dbm"),
		"scratch":  telemetry.String("x"),
	})

	out := Normalize(tbl)

	assert.Equal(t, []string{ColLogDate, ColOperator, ColPWR}, out.Columns())
	pwr, ok := out.Value(0, ColPWR).Float()
	require.True(t, ok)
	assert.Equal(t, -95.0, pwr)
}
