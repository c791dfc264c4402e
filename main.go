package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/rediacc/rdc/cmd"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rdc",
	Short: "rdc - config stores, encrypted vaults and a task queue for Rediacc infrastructure.",
	Long: `rdc keeps infrastructure configuration in sync across machines.

Features:
  - Push and pull versioned config documents to Git or Vault stores
  - Keep encrypted vault documents and shared state in an S3 bucket
  - Queue tasks for bridges and trace them through their lifecycle

Usage:
  rdc <command> [flags]

Run 'rdc help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("rdc", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Run " + ui.Code.Sprint("rdc --help") + " to see available commands.")
	},
}

func main() {
	cmd.Register(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		}
		os.Exit(1)
	}
}
