package cmd

import (
	"context"
	"fmt"

	rerrors "github.com/rediacc/rdc/internal/errors"
	"github.com/rediacc/rdc/internal/vault"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var vaultKind string

func init() {
	vaultListCmd.Flags().StringVar(&vaultKind, "kind", "", "only list team, machine, organization or named vaults")

	VaultCmd.AddCommand(vaultListCmd)
}

func resetVaultListCommandState() {
	vaultKind = ""
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored vault paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Listing vaults...", verbose)

		kind := vault.Kind(vaultKind)
		switch kind {
		case "", vault.KindTeam, vault.KindMachine, vault.KindOrganization, vault.KindNamed:
		default:
			defer cleanup()
			return reportError(spinner, "List vaults", fmt.Errorf("%w: unknown vault kind %q", rerrors.ErrInvalidInput, vaultKind))
		}

		paths, err := workflows.VaultList(context.Background(), workflows.VaultListOptions{Kind: kind, Log: Logger})
		if err != nil {
			defer cleanup()
			return reportError(spinner, "List vaults", err)
		}
		cleanup()

		if len(paths) == 0 {
			fmt.Println("No vaults found.")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}
