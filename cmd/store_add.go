package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/stores"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	storeForce       bool
	storeGitBranch   string
	storeGitPath     string
	storeVaultToken  string
	storeVaultMount  string
	storeVaultPrefix string
	storeVaultNS     string
)

func init() {
	storeAddCmd.Flags().BoolVar(&storeForce, "force", false, "replace an existing entry with the same name")
	storeAddCmd.Flags().StringVar(&storeGitBranch, "branch", "", "git branch (default main)")
	storeAddCmd.Flags().StringVar(&storeGitPath, "path", "", "directory inside the git repository (default configs)")
	storeAddCmd.Flags().StringVar(&storeVaultToken, "token", "", "vault token (default $VAULT_TOKEN)")
	storeAddCmd.Flags().StringVar(&storeVaultMount, "mount", "", "vault KV v2 mount (default secret)")
	storeAddCmd.Flags().StringVar(&storeVaultPrefix, "prefix", "", "vault path prefix (default rdc/configs)")
	storeAddCmd.Flags().StringVar(&storeVaultNS, "namespace", "", "vault enterprise namespace")

	StoreCmd.AddCommand(storeAddCmd)
}

func resetStoreAddCommandState() {
	storeForce = false
	storeGitBranch = ""
	storeGitPath = ""
	storeVaultToken = ""
	storeVaultMount = ""
	storeVaultPrefix = ""
	storeVaultNS = ""
}

var storeAddCmd = &cobra.Command{
	Use:   "add <name> <git|vault> <url-or-address>",
	Short: "Add a store entry to the local configuration",
	Long: `Adds a store entry to the local configuration.

Examples:
  rdc store add prod git git@github.com:acme/configs.git --branch main
  rdc store add secrets vault https://vault.example.com --mount kv`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Adding store...", verbose)
		defer cleanup()

		entry := stores.Entry{Type: stores.Kind(args[1])}
		switch entry.Type {
		case stores.KindGit:
			entry.Git = &stores.GitEntry{URL: args[2], Branch: storeGitBranch, Path: storeGitPath}
		case stores.KindVault:
			entry.Vault = &stores.VaultEntry{
				Address:   args[2],
				Token:     storeVaultToken,
				Mount:     storeVaultMount,
				Prefix:    storeVaultPrefix,
				Namespace: storeVaultNS,
			}
		}

		err := workflows.AddStore(context.Background(), workflows.AddStoreOptions{
			Name:  args[0],
			Entry: entry,
			Force: storeForce,
		})
		if err != nil {
			return reportError(spinner, "Add store", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added " + string(entry.Type) + " store " + ui.Highlight.Sprint(args[0]) +
			"\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rdc store verify "+args[0]) + " to check it"
		return nil
	},
}
