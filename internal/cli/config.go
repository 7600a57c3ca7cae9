package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Display()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), s)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to a config file",
	Long: `Write the effective configuration (defaults, environment and flags
merged) to the config file in use, or to ./config.yaml when there is none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path, err := config.Save(cfg)
		if err != nil {
			return err
		}

		ui.Success(cmd.OutOrStdout(), "Configuration written to %s", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
