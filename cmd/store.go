package cmd

import (
	"github.com/spf13/cobra"
)

// StoreCmd groups commands that move config documents between the local
// machine and a config store.
var StoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Push, pull and manage config documents in Git or Vault stores",
	Long: `Synchronizes versioned config documents with a Git repository or a
HashiCorp Vault KV v2 mount.

Pushes are rejected when the remote document belongs to a different
lineage (GUID mismatch) or carries a newer version than the local copy.`,
}

func resetStoreCommandState() {
	resetStorePushCommandState()
	resetStorePullCommandState()
	resetStoreVerifyCommandState()
	resetStoreAddCommandState()
}
