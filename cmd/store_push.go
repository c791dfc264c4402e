package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/utils"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	storeFile       string
	storeNewLineage bool
)

func init() {
	storePushCmd.Flags().StringVarP(&storeFile, "file", "f", "-", "config document to push (- reads stdin)")
	storePushCmd.Flags().BoolVar(&storeNewLineage, "new", false, "assign a fresh id and start a new lineage")

	StoreCmd.AddCommand(storePushCmd)
}

func resetStorePushCommandState() {
	storeFile = "-"
	storeNewLineage = false
}

var storePushCmd = &cobra.Command{
	Use:   "push <store> <name>",
	Short: "Upload a config document",
	Long: `Uploads a config document to a store.

Examples:
  rdc store push prod web --file web.json
  cat web.json | rdc store push prod web
  rdc store push prod web --file web.json --new`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Pushing config...", verbose)
		defer cleanup()

		document, err := utils.ReadInput(storeFile)
		if err != nil {
			return reportError(spinner, "Push", err)
		}

		result, err := workflows.Push(context.Background(), workflows.PushOptions{
			Store:      args[0],
			Name:       args[1],
			Document:   document,
			NewLineage: storeNewLineage,
			Log:        Logger,
		})
		if err != nil {
			return reportError(spinner, "Push", err)
		}

		msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Pushed %s to %s (version %d)",
			ui.Highlight.Sprint(result.Name), ui.Highlight.Sprint(result.Store), result.Version)
		if result.RemoteVersion > 0 {
			msg += ui.Muted.Sprintf(" replacing version %d", result.RemoteVersion)
		}
		if storeNewLineage {
			msg += "\n" + ui.Info.Sprint("→") + " New lineage id " + ui.Code.Sprint(result.ID)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
