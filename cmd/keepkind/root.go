package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keepkind",
		Short: "Grounded decision receipts for the things you own",
		Long: `KeepKind ingests sources about an item, retrieves the most relevant
chunks for a question and records model recommendations as versioned receipts.

Configuration is read from CONFIG_FILE (default configs/config.toml) and
environment variables.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newExportCmd())
	return cmd
}
