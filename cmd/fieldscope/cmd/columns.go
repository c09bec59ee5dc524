package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agristack/fieldscope/internal/cmd/output"
	"github.com/agristack/fieldscope/pkg/schema"
)

// columnsCmd represents the columns command.
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show the canonical output column schema",
	Long: `Show the versioned allow-list of canonical output columns in
published order. Columns outside this list are dropped during projection.`,
	RunE: runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

// columnsDocument is the structured form of the schema listing.
type columnsDocument struct {
	Version int      `json:"version" yaml:"version"`
	Columns []string `json:"columns" yaml:"columns"`
}

func runColumns(_ *cobra.Command, _ []string) error {
	columns := schema.Canonical()

	switch output.Format(outputFormat) {
	case output.FormatJSON, output.FormatYAML:
		return render(columnsDocument{Version: schema.Version(), Columns: columns})
	default:
		rows := make([][]string, 0, len(columns))
		for i, col := range columns {
			rows = append(rows, []string{strconv.Itoa(i + 1), col})
		}
		return render(output.Data{Headers: []string{"#", "Column"}, Rows: rows})
	}
}
