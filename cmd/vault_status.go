package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	VaultCmd.AddCommand(vaultStatusCmd)
}

var vaultStatusCmd = &cobra.Command{
	Use:   "status <path>",
	Short: "Show whether a vault document exists and is encrypted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Checking vault...", verbose)
		defer cleanup()

		status, err := workflows.VaultStatus(context.Background(), workflows.VaultOptions{Path: args[0], Log: Logger})
		if err != nil {
			return reportError(spinner, "Vault status", err)
		}

		switch {
		case !status.Exists:
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " " + ui.Path.Sprint(status.Path) + " does not exist"
		case status.Encrypted:
			spinner.FinalMSG = ui.Success.Sprint("✓") + " " + ui.Path.Sprint(status.Path) + " is encrypted"
		default:
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " " + ui.Path.Sprint(status.Path) + " is stored in plaintext"
		}
		return nil
	},
}
