package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/utils"
	"github.com/rediacc/rdc/internal/vault"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var stateFile string

func init() {
	stateSetCmd.Flags().StringVarP(&stateFile, "file", "f", "-", "JSON record to store (- reads stdin)")

	StateCmd.AddCommand(stateSetCmd)
}

func resetStateSetCommandState() {
	stateFile = "-"
}

var stateSetCmd = &cobra.Command{
	Use:   "set <section> <name>",
	Short: "Create or replace a state record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword(true)
		if err != nil {
			fmt.Println(formatError("Write state", err))
			return ErrReported
		}

		spinner, cleanup := startSpinner("Writing state...", verbose)
		defer cleanup()

		document, err := utils.ReadInput(stateFile)
		if err != nil {
			return reportError(spinner, "Write state", err)
		}

		err = workflows.StateSet(context.Background(), workflows.StateSetOptions{
			Section:  vault.Section(args[0]),
			Name:     args[1],
			Document: document,
			Password: password,
			Log:      Logger,
		})
		if err != nil {
			return reportError(spinner, "Write state", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Stored " + args[0] + "/" + ui.Highlight.Sprint(args[1])
		return nil
	},
}
