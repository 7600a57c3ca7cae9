package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/fbadmin"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of credentials, Auth and Database",
	Long:  `Check that the service account key is usable and that Firebase Authentication and the Realtime Database answer.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		creds := fbadmin.CredentialsStatus(cfg.Firebase)
		client, err := fbadmin.New(cmd.Context(), cfg.Firebase, cfg.AdminsPath, newLogger(cfg))
		if err != nil {
			ui.Info(out, "Service          Status")
			ui.Info(out, "────────────────────────────────────────")
			printServiceStatus(cmd, "Credentials", fbadmin.ServiceDown, err)
			return reported(err)
		}

		status := client.Status(cmd.Context())
		if creds == fbadmin.ServiceUnknown {
			// the secret was read successfully by New
			creds = fbadmin.ServiceUp
		}
		status.Credentials = creds

		ui.Info(out, "Service          Status")
		ui.Info(out, "────────────────────────────────────────")

		printServiceStatus(cmd, "Credentials", status.Credentials, nil)
		printServiceStatus(cmd, "Authentication", status.Auth, status.AuthErr)
		printServiceStatus(cmd, "Database", status.Database, status.DatabaseErr)

		return nil
	},
}

func printServiceStatus(cmd *cobra.Command, name string, status fbadmin.ServiceStatus, err error) {
	var statusText string
	switch status {
	case fbadmin.ServiceUp:
		statusText = ui.Status(true, "UP")
	case fbadmin.ServiceDown:
		statusText = ui.Status(false, "DOWN")
	default:
		statusText = ui.Pending("UNKNOWN")
	}

	color.New().Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, statusText)
	if err != nil {
		color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "                 %v\n", err)
	}
}
