package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agristack/fieldscope/pkg/diagnostics"
	"github.com/agristack/fieldscope/pkg/logging"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [name]",
	Short: "Run one diagnostic check over the reconciled stream",
	Long: `Run a single named diagnostic check over the device's reconciled
telemetry stream and print the matching records. Without a name, the
available checks are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return render(checkCatalog())
	}

	session, err := newSession(cmd.Context())
	if err != nil {
		return err
	}

	subset, label, err := session.Check(args[0])
	if err != nil {
		return err
	}

	logging.Info().
		Str("check", args[0]).
		Str("label", label).
		Int("matched", subset.Len()).
		Int("total", session.Table().Len()).
		Msg("check complete")
	return render(tablePayload(subset))
}

// checkRef is one row of the check listing.
type checkRef struct {
	Name  string `json:"name"  yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

func checkCatalog() []checkRef {
	checks := diagnostics.All()
	refs := make([]checkRef, 0, len(checks))
	for _, c := range checks {
		refs = append(refs, checkRef{Name: c.Name, Label: c.Label})
	}
	return refs
}
