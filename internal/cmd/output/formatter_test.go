package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agristack/fieldscope/pkg/diagnostics"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

func sampleTable() *telemetry.Table {
	t := telemetry.NewTable("LogDate", "Bat")
	t.Append(telemetry.Row{
		"LogDate": telemetry.String("01/01/2024 10:00:00"),
		"Bat":     telemetry.Number(3.59),
	})
	t.Append(telemetry.Row{
		"LogDate": telemetry.String("01/01/2024 11:00:00"),
	})
	return t
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "markdown", "JSON", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	doc := DocumentFromTable(sampleTable())
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, doc))

	var decoded TableDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"LogDate", "Bat"}, decoded.Columns)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "3.59", decoded.Rows[0]["Bat"])
	_, present := decoded.Rows[1]["Bat"]
	assert.False(t, present, "null cells omitted from structured output")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, DocumentFromTable(sampleTable())))
	assert.Contains(t, buf.String(), "columns:")
	assert.Contains(t, buf.String(), "LogDate")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, FromTable(sampleTable())))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "LOGDATE")
	assert.Contains(t, out, "3.59")
}

func TestTableFormatterStructSlice(t *testing.T) {
	rows := []diagnostics.SummaryRow{
		{DeviceID: "41512", Check: "Low Battery", Matched: 1, Total: 2, Rate: "50.00%"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "Low Battery")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, strings.ToUpper(out), "DEVICE ID")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, FromTable(sampleTable())))

	out := buf.String()
	assert.Contains(t, out, "LogDate")
	assert.Contains(t, out, "3.59")
	assert.Contains(t, out, "|")
}
