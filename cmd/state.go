package cmd

import (
	"github.com/spf13/cobra"
)

// StateCmd groups commands for the shared state.json document.
var StateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect and edit machines, storages and repositories in state.json",
	Long: `Manages the state.json document in the configured S3 bucket.

Record names are always stored in plaintext so they can be listed without
the master password. Record values are encrypted when the document was
created with a password.`,
}

func init() {
	StateCmd.PersistentFlags().BoolVar(&askPassword, "ask-password", false, "prompt for the master password")
}

func resetStateCommandState() {
	resetStateShowCommandState()
	resetStateSetCommandState()
}
