// Package cli implements the adminctl commands.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/fbadmin"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Manage admin accounts of the e-commerce admin app",
	Long: `adminctl provisions Firebase Authentication admins, mirrors them into
the Realtime Database under Admins/<uid>, and helps diagnose UID
mismatches between the two.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// reportedError marks an error whose message a command already printed.
type reportedError struct {
	error
}

func reported(err error) error {
	return reportedError{err}
}

// Execute runs the root command; Ctrl-C cancels the in-flight SDK call.
func Execute(version string) error {
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var r reportedError
		if !errors.As(err, &r) {
			ui.Fail(os.Stderr, "%v", err)
		}
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Bool("trace", false, "Log every SDK call to stderr")
	flags.String("credentials", "", "Path to the service account key")
	flags.String("credentials-secret", "", "Secret Manager version holding the service account key")
	flags.String("database-url", "", "Realtime Database URL")
	flags.String("project-id", "", "Firebase project ID (defaults to the one in the key)")
	flags.String("admins-path", "", "Database path holding admin records")
	flags.String("data-file", "", "Local admin data file")

	viper.BindPFlag("trace", flags.Lookup("trace"))
	viper.BindPFlag("credentials-file", flags.Lookup("credentials"))
	viper.BindPFlag("credentials-secret", flags.Lookup("credentials-secret"))
	viper.BindPFlag("database-url", flags.Lookup("database-url"))
	viper.BindPFlag("project-id", flags.Lookup("project-id"))
	viper.BindPFlag("admins-path", flags.Lookup("admins-path"))
	viper.BindPFlag("data-file", flags.Lookup("data-file"))

	rootCmd.AddCommand(createCmd, checkUIDCmd, listCmd, importCmd, statusCmd, configCmd, versionCmd)
}

func newLogger(cfg *config.Config) *slog.Logger {
	if !cfg.Trace {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// connect initializes Firebase, printing the failure the way every command
// reports it.
func connect(cmd *cobra.Command, cfg *config.Config) (*fbadmin.Client, error) {
	client, err := dial(cmd, cfg)
	if err != nil {
		return nil, err
	}

	ui.Success(cmd.OutOrStdout(), "Firebase initialized successfully")
	return client, nil
}

// dial is connect without the success line.
func dial(cmd *cobra.Command, cfg *config.Config) (*fbadmin.Client, error) {
	out := cmd.OutOrStdout()

	client, err := fbadmin.New(cmd.Context(), cfg.Firebase, cfg.AdminsPath, newLogger(cfg))
	if err != nil {
		var nf *fbadmin.CredentialsNotFoundError
		if errors.As(err, &nf) {
			ui.Fail(out, "Service account key not found at: %s", nf.Path)
			ui.Plain(out, "Please ensure serviceAccountKey.json exists in the Backend folder")
		} else {
			ui.Fail(out, "Error initializing Firebase: %v", err)
		}
		return nil, reported(err)
	}
	return client, nil
}
