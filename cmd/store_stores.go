package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	StoreCmd.AddCommand(storeStoresCmd)
}

var storeStoresCmd = &cobra.Command{
	Use:   "stores",
	Short: "List configured store entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := workflows.ListStores(context.Background())
		if err != nil {
			fmt.Println(formatError("List stores", err))
			return ErrReported
		}

		if len(entries) == 0 {
			fmt.Println("No stores configured.")
			fmt.Println(ui.Info.Sprint("→") + " Add one with " + ui.Code.Sprint("rdc store add"))
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-16s %-6s %s\n", e.Name, e.Kind, ui.Muted.Sprint(e.Location))
		}
		return nil
	},
}
