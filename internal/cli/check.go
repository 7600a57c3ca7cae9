package cli

import (
	"github.com/spf13/cobra"

	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/diagnose"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var checkUIDCmd = &cobra.Command{
	Use:   "check-uid",
	Short: "Print admin records and a UID mismatch checklist",
	Long: `Print every admin record of the local admin data file followed by the
steps for fixing a UID mismatch between Firebase Authentication and the
Realtime Database.

With --verify each email is also looked up in Firebase Authentication and
compared with its record key. Problems are printed; the command itself
always succeeds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfg, err := config.Load()
		if err != nil {
			ui.Fail(out, "Unexpected error: %v", err)
			return nil
		}

		diagnose.PrintBanner(out)

		var lookup diagnose.Lookup
		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			client, err := dial(cmd, cfg)
			if err != nil {
				ui.Warn(out, "Continuing without Auth verification")
			} else {
				lookup = client
			}
		}

		diagnose.Inspect(cmd.Context(), out, cfg.DataFile, lookup)
		return nil
	},
}

func init() {
	checkUIDCmd.Flags().Bool("verify", false, "Look up each email in Firebase Auth and compare UIDs")
}
