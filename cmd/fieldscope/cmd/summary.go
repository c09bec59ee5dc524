package cmd

import (
	"github.com/spf13/cobra"
)

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary [check...]",
	Short: "Aggregate the check battery into per-check match rates",
	Long: `Run diagnostic checks over the device's reconciled telemetry stream
and print one summary row per check: records matched, records total, and the
match rate. Without arguments the full battery runs. Use --output markdown
for a report-ready table.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd.Context())
	if err != nil {
		return err
	}

	rows, err := session.Summary(args...)
	if err != nil {
		return err
	}
	return render(rows)
}
