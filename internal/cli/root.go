package cli

import (
	"github.com/spf13/cobra"
)

// DefaultConfigPath путь к конфигурации по умолчанию
const DefaultConfigPath = "config.toml"

func NewRoot() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "salon-booking",
		Short:         "Salon booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "path to TOML config")

	cmd.AddCommand(NewServeCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSlotsCmd(&configPath))
	return cmd
}

// Execute запускает корневую команду
func Execute() error {
	return NewRoot().Execute()
}
