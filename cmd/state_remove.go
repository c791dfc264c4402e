package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/vault"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	StateCmd.AddCommand(stateRemoveCmd)
}

var stateRemoveCmd = &cobra.Command{
	Use:   "remove <section> <name>",
	Short: "Remove a state record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword(false)
		if err != nil {
			fmt.Println(formatError("Remove state", err))
			return ErrReported
		}

		spinner, cleanup := startSpinner("Removing state record...", verbose)
		defer cleanup()

		err = workflows.StateRemove(context.Background(), workflows.StateRemoveOptions{
			Section:  vault.Section(args[0]),
			Name:     args[1],
			Password: password,
			Log:      Logger,
		})
		if err != nil {
			return reportError(spinner, "Remove state", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + args[0] + "/" + ui.Highlight.Sprint(args[1])
		return nil
	},
}
