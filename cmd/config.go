package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd groups commands for the local configuration file.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the local rdc configuration",
}

func resetConfigCommandState() {
	resetConfigSetS3CommandState()
}
