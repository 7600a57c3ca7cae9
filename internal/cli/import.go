package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/provision"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Write the local admin data file into the database",
	Long: `Overwrite Admins/<uid> with every record of the local admin data file.
Use this after correcting a UID in admin-data.json.

With --claims, records flagged isAdmin also get the "admin" custom claim
on the Firebase Auth user with that UID.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		f, err := admins.LoadFile(cfg.DataFile)
		if err != nil {
			return err
		}
		if len(f.Admins) == 0 {
			ui.Warn(out, "No admin users found in %s", cfg.DataFile)
			return nil
		}

		client, err := connect(cmd, cfg)
		if err != nil {
			return err
		}

		claims, _ := cmd.Flags().GetBool("claims")

		ui.Info(out, "→ Importing %d admin records from %s...", len(f.Admins), cfg.DataFile)
		p := provision.New(client, client, out, newLogger(cfg))
		if failed := p.Import(cmd.Context(), f.Admins, claims); failed > 0 {
			err := fmt.Errorf("%d of %d records failed to import", failed, len(f.Admins))
			ui.Fail(out, "%v", err)
			return reported(err)
		}

		ui.Success(out, "Import completed")
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("claims", false, "Also set the admin custom claim for records flagged isAdmin")
}
