package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/utils"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var storeOutput string

func init() {
	storePullCmd.Flags().StringVarP(&storeOutput, "output", "o", "", "write the document to a file instead of stdout")

	StoreCmd.AddCommand(storePullCmd)
}

func resetStorePullCommandState() {
	storeOutput = ""
}

var storePullCmd = &cobra.Command{
	Use:   "pull <store> <name>",
	Short: "Download a config document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Pulling config...", verbose)

		config, err := workflows.Pull(context.Background(), workflows.PullOptions{
			Store: args[0],
			Name:  args[1],
			Log:   Logger,
		})
		if err != nil {
			defer cleanup()
			return reportError(spinner, "Pull", err)
		}

		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			defer cleanup()
			return reportError(spinner, "Pull", err)
		}

		if storeOutput == "" {
			cleanup()
			fmt.Println(string(data))
			return nil
		}

		defer cleanup()
		if err := utils.WriteFile(storeOutput, append(data, '\n')); err != nil {
			return reportError(spinner, "Pull", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Pulled %s version %d to %s",
			ui.Highlight.Sprint(args[1]), config.Version, ui.Path.Sprint(storeOutput))
		return nil
	},
}
