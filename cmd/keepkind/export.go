package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YeswanthC7/keepkind/internal/bootstrap"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <receiptId>",
		Short: "Print a receipt as markdown",
		Long:  `Print the markdown export of a receipt. Soft-deleted receipts are exported too.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid receipt id %q", args[0])
			}

			app, err := bootstrap.New(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			export, err := app.Services.Receipts.ExportGlobal(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), export.Content)
			return nil
		},
	}
}
