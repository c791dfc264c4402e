package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var storeVerifyAll bool

func init() {
	storeVerifyCmd.Flags().BoolVar(&storeVerifyAll, "all", false, "verify every configured store")

	StoreCmd.AddCommand(storeVerifyCmd)
}

func resetStoreVerifyCommandState() {
	storeVerifyAll = false
}

var storeVerifyCmd = &cobra.Command{
	Use:   "verify [store]",
	Short: "Check that stores are reachable",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Verifying stores...", verbose)
		defer cleanup()

		if len(args) == 0 && !storeVerifyAll {
			return reportError(spinner, "Verify", fmt.Errorf("name a store or pass --all"))
		}

		opts := workflows.VerifyOptions{All: storeVerifyAll, Log: Logger}
		if len(args) == 1 {
			opts.Store = args[0]
		}

		statuses, err := workflows.Verify(context.Background(), opts)
		if err != nil {
			return reportError(spinner, "Verify", err)
		}
		if len(statuses) == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No stores configured"
			return nil
		}

		msg := ""
		failed := 0
		for _, status := range statuses {
			msg += fmt.Sprintf("%s %s %s\n", ui.Check(status.OK), status.Store, ui.Muted.Sprintf("(%s)", status.Kind))
			if !status.OK {
				failed++
			}
		}
		spinner.FinalMSG = msg
		if failed > 0 {
			return ErrReported
		}
		return nil
	},
}
