package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rediacc/rdc/internal/configs"
	rerrors "github.com/rediacc/rdc/internal/errors"
	"github.com/rediacc/rdc/internal/utils"
	"github.com/spf13/cobra"
)

var askPassword bool

// VaultCmd groups commands for encrypted vault documents in the object store.
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Read and write encrypted vault documents",
	Long: `Manages JSON vault documents stored under vaults/ in the configured
S3 bucket.

Documents are encrypted with the master password from RDC_MASTER_PASSWORD
(or --ask-password). Without a password they are stored in plaintext, and
reading an encrypted document fails instead of returning ciphertext.

Paths look like team/<team>, machine/<team>/<machine>, organization or
named/<name>.`,
}

func init() {
	VaultCmd.PersistentFlags().BoolVar(&askPassword, "ask-password", false, "prompt for the master password")
}

func resetVaultCommandState() {
	askPassword = false
	resetVaultSetCommandState()
	resetVaultListCommandState()
}

// promptPassword returns the password typed at the terminal when
// --ask-password is set, and "" otherwise so RDC_MASTER_PASSWORD applies.
// Writes ask twice.
func promptPassword(confirm bool) (string, error) {
	if !askPassword {
		return "", nil
	}
	if !utils.IsTerminal() {
		return "", fmt.Errorf("%w: --ask-password needs an interactive terminal, set %s instead", rerrors.ErrPasswordRequired, configs.MasterPasswordEnv)
	}
	return utils.PromptMasterPassword(confirm)
}

// prettyJSON indents a JSON document, falling back to the raw text.
func prettyJSON(data json.RawMessage) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return string(data)
	}
	return string(out)
}
