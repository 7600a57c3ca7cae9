package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/provision"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or claim the admin accounts",
	Long: `Create each admin account in Firebase Authentication, write its record
under Admins/<uid> and set the "admin" custom claim. Accounts whose email
is already registered are claimed instead: the existing user gets the
record and the claim.

Without --accounts the two built-in test admins are used. Per-account
failures are reported and do not stop the run; only a failure to
initialize Firebase exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		fmt.Fprintln(out)
		ui.Banner(out, "Firebase Admin User Setup")
		fmt.Fprintln(out)

		accounts := admins.DefaultAccounts()
		if cfg.AccountsFile != "" {
			accounts, err = admins.LoadAccounts(cfg.AccountsFile)
			if err != nil {
				return err
			}
		}

		client, err := connect(cmd, cfg)
		if err != nil {
			return err
		}

		p := provision.New(client, client, out, newLogger(cfg))

		fmt.Fprintln(out)
		ui.Info(out, "→ Creating default admin users...")
		fmt.Fprintln(out)
		p.Run(cmd.Context(), accounts)

		fmt.Fprintln(out)
		// listing failures are printed and do not change the exit status
		_ = p.ListAdmins(cmd.Context())

		provision.PrintSummary(out, accounts)
		return nil
	},
}

func init() {
	createCmd.Flags().String("accounts", "", "JSON/YAML file of accounts to create instead of the built-in ones")

	viper.BindPFlag("accounts-file", createCmd.Flags().Lookup("accounts"))
}
