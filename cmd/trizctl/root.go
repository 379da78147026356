package main

import (
	"triz_edu_backend/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "trizctl",
	Short:        "Tools for the TRIZ course backend",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs", "Directory containing config.yaml")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(chatCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(dir)
}

// catalogPath returns the positional argument when given, otherwise the
// catalog configured in config.yaml.
func catalogPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.Catalog.Path, nil
}
