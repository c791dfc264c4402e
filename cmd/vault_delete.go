package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	VaultCmd.AddCommand(vaultDeleteCmd)
}

var vaultDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a vault document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Deleting vault...", verbose)
		defer cleanup()

		err := workflows.VaultDelete(context.Background(), workflows.VaultOptions{Path: args[0], Log: Logger})
		if err != nil {
			return reportError(spinner, "Delete vault", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.Path.Sprint(args[0])
		return nil
	},
}
