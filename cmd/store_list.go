package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	StoreCmd.AddCommand(storeListCmd)
}

var storeListCmd = &cobra.Command{
	Use:   "list <store>",
	Short: "List config documents in a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Listing configs...", verbose)

		names, err := workflows.ListConfigs(context.Background(), workflows.ListConfigsOptions{
			Store: args[0],
			Log:   Logger,
		})
		if err != nil {
			defer cleanup()
			return reportError(spinner, "List", err)
		}
		cleanup()

		if len(names) == 0 {
			fmt.Println("No configs found in " + ui.Highlight.Sprint(args[0]) + ".")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
