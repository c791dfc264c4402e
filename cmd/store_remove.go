package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	StoreCmd.AddCommand(storeRemoveCmd)
}

var storeRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a store entry from the local configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Removing store...", verbose)
		defer cleanup()

		if err := workflows.RemoveStore(context.Background(), args[0]); err != nil {
			return reportError(spinner, "Remove store", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed store " + ui.Highlight.Sprint(args[0])
		return nil
	},
}
