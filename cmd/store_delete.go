package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	StoreCmd.AddCommand(storeDeleteCmd)
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <store> <name>",
	Short: "Delete a config document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Deleting config...", verbose)
		defer cleanup()

		err := workflows.DeleteConfig(context.Background(), workflows.DeleteConfigOptions{
			Store: args[0],
			Name:  args[1],
			Log:   Logger,
		})
		if err != nil {
			return reportError(spinner, "Delete", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.Highlight.Sprint(args[1]) + " from " + ui.Highlight.Sprint(args[0])
		return nil
	},
}
