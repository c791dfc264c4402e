package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/utils"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var vaultFile string

func init() {
	vaultSetCmd.Flags().StringVarP(&vaultFile, "file", "f", "-", "JSON document to store (- reads stdin)")

	VaultCmd.AddCommand(vaultSetCmd)
}

func resetVaultSetCommandState() {
	vaultFile = "-"
}

var vaultSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Store a vault document",
	Long: `Stores a JSON document at a vault path, encrypting it when a master
password is available.

Examples:
  rdc vault set team/ops --file ops.json
  echo '{"SSH_KEY":"..."}' | rdc vault set machine/ops/web-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword(true)
		if err != nil {
			fmt.Println(formatError("Write vault", err))
			return ErrReported
		}

		spinner, cleanup := startSpinner("Writing vault...", verbose)
		defer cleanup()

		document, err := utils.ReadInput(vaultFile)
		if err != nil {
			return reportError(spinner, "Write vault", err)
		}

		result, err := workflows.VaultSet(context.Background(), workflows.VaultSetOptions{
			VaultOptions: workflows.VaultOptions{Path: args[0], Password: password, Log: Logger},
			Document:     document,
		})
		if err != nil {
			return reportError(spinner, "Write vault", err)
		}

		msg := ui.Success.Sprint("✓") + " Stored " + ui.Path.Sprint(result.Path)
		if result.Encrypted {
			msg += ui.Muted.Sprint(" (encrypted)")
		} else {
			msg += "\n" + ui.Warning.Sprint("⚠") + " No master password set, the document is stored in plaintext"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
