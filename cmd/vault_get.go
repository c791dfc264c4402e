package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	VaultCmd.AddCommand(vaultGetCmd)
}

var vaultGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print a decrypted vault document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword(false)
		if err != nil {
			fmt.Println(formatError("Read vault", err))
			return ErrReported
		}

		spinner, cleanup := startSpinner("Reading vault...", verbose)
		data, err := workflows.VaultGet(context.Background(), workflows.VaultOptions{
			Path:     args[0],
			Password: password,
			Log:      Logger,
		})
		if err != nil {
			defer cleanup()
			return reportError(spinner, "Read vault", err)
		}
		cleanup()

		fmt.Println(prettyJSON(data))
		return nil
	},
}
