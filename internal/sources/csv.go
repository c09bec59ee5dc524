package sources

import (
	"encoding/csv"
	"io"

	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// decodeCSV materializes an exported feed document into a table. The first
// record is the header; every cell stays an opaque string, with empty cells
// reading as null. Ragged rows are tolerated; missing trailing cells read
// as null.
func decodeCSV(r io.Reader, name string) (*telemetry.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", name, "document has no header row", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}

	table := telemetry.NewTable(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", name, err)
		}

		row := make(telemetry.Row, len(header))
		for i, col := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			row[col] = telemetry.String(record[i])
		}
		table.Append(row)
	}
	return table, nil
}
