package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripledger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		return config.Write(os.Stdout, cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
