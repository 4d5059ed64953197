package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YeswanthC7/keepkind/internal/bootstrap"
	"github.com/YeswanthC7/keepkind/internal/config"
	"github.com/YeswanthC7/keepkind/internal/platform/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config failed: %w", err)
			}
			bootstrap.SetupLogger(cfg)

			db, err := database.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}
