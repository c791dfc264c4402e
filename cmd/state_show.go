package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/vault"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var stateNamesOnly bool

func init() {
	stateShowCmd.Flags().BoolVar(&stateNamesOnly, "names", false, "list record names without decrypting values")

	StateCmd.AddCommand(stateShowCmd)
}

func resetStateShowCommandState() {
	stateNamesOnly = false
}

var stateShowCmd = &cobra.Command{
	Use:   "show [section] [name]",
	Short: "Show state records",
	Long: `Shows records from state.json.

Examples:
  rdc state show
  rdc state show machines --names
  rdc state show machines web-1`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword(false)
		if err != nil {
			fmt.Println(formatError("Read state", err))
			return ErrReported
		}

		opts := workflows.StateShowOptions{NamesOnly: stateNamesOnly, Password: password, Log: Logger}
		if len(args) > 0 {
			opts.Section = vault.Section(args[0])
		}
		if len(args) > 1 {
			opts.Name = args[1]
		}

		spinner, cleanup := startSpinner("Reading state...", verbose)
		result, err := workflows.StateShow(context.Background(), opts)
		if err != nil {
			defer cleanup()
			return reportError(spinner, "Read state", err)
		}
		cleanup()

		if opts.Name != "" {
			fmt.Println(prettyJSON(result.Records[opts.Section][opts.Name]))
			return nil
		}

		sections := vault.Sections
		if opts.Section != "" {
			sections = []vault.Section{opts.Section}
		}
		for _, section := range sections {
			records := result.Records[section]
			fmt.Printf("%s %s\n", ui.Highlight.Sprint(string(section)), ui.Muted.Sprintf("(%d)", len(records)))
			for _, name := range sortedKeys(records) {
				if stateNamesOnly {
					fmt.Println("  " + name)
					continue
				}
				fmt.Printf("  %s: %s\n", name, string(records[name]))
			}
		}
		return nil
	},
}
