package schema

import (
	"strconv"
	"strings"

	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// signalUnitSuffix is stripped from PWR tokens before numeric coercion.
const signalUnitSuffix = "dbm"

// numericKeys is the enumerated set of composite keys coerced to numbers.
// Every other key passes through as an opaque string.
var numericKeys = map[string]bool{
	ColPWR: true,
}

// Decompose splits the composite GSM info column into an Operator column
// plus one column per key:value token. The PWR key has its unit suffix
// stripped and is coerced to a signed number; invalid readings become null.
// A table without the composite column is returned unchanged.
func Decompose(t *telemetry.Table) *telemetry.Table {
	if !t.HasColumn(ColGSMInfo) {
		logging.Warn().
			Str("column", ColGSMInfo).
			Msg("composite column not found, skipping decomposition")
		return t
	}

	// Columns keep first-seen order so repeated runs over the same feed
	// produce an identical layout.
	extraOrder := []string{ColOperator}
	seen := map[string]bool{ColOperator: true}

	decomposed := make([]telemetry.Row, 0, t.Len())
	for _, row := range t.Rows() {
		out := row.Clone()
		delete(out, ColGSMInfo)

		raw, _ := row[ColGSMInfo].Text()
		operator, fields := splitComposite(raw)
		out[ColOperator] = telemetry.String(operator)

		for _, kv := range fields {
			if !seen[kv.key] {
				seen[kv.key] = true
				extraOrder = append(extraOrder, kv.key)
			}
			out[kv.key] = compositeValue(kv.key, kv.value)
		}
		decomposed = append(decomposed, out)
	}

	columns := make([]string, 0, len(t.Columns())+len(extraOrder))
	for _, col := range t.Columns() {
		if col != ColGSMInfo {
			columns = append(columns, col)
		}
	}
	columns = append(columns, extraOrder...)

	result := telemetry.NewTable(columns...)
	for _, row := range decomposed {
		result.Append(row)
	}

	logging.Debug().
		Strs("columns", extraOrder).
		Msg("composite column decomposed")
	return result
}

// keyValue is one key:value token of the composite field.
type keyValue struct {
	key   string
	value string
}

// splitComposite parses "Operator,K1:V1,K2:V2,..." into its parts. Tokens
// without a colon are discarded.
func splitComposite(raw string) (string, []keyValue) {
	parts := strings.Split(raw, ",")
	if len(parts) == 0 {
		return "", nil
	}

	operator := strings.TrimSpace(parts[0])
	fields := make([]keyValue, 0, len(parts)-1)
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		fields = append(fields, keyValue{
			key:   strings.TrimSpace(key),
			value: strings.TrimSpace(value),
		})
	}
	return operator, fields
}

// compositeValue types a decomposed token: recognized numeric keys are
// coerced (null on failure), everything else stays an opaque string.
func compositeValue(key, value string) telemetry.Value {
	if !numericKeys[key] {
		return telemetry.String(value)
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(value, signalUnitSuffix, ""))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return telemetry.Null()
	}
	return telemetry.Number(f)
}
