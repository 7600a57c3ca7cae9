package cli

import (
	"github.com/spf13/cobra"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/provision"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin records stored in the database",
	Long: `Print every record under the admins path of the Realtime Database.

With --output the records are also saved in the admin data file format
(.json, .yaml or .yml), ready for check-uid or a later import.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := connect(cmd, cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		set, err := client.Admins(cmd.Context())
		if err != nil {
			ui.Fail(out, "Error listing admins: %v", err)
			return reported(err)
		}
		provision.PrintAdmins(out, set)

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			if err := admins.SaveFile(&admins.File{Admins: set}, path); err != nil {
				return err
			}
			ui.Success(out, "Saved %d admin records to %s", len(set), path)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("output", "o", "", "Also save the records to this admin data file")
}
