package cmd

import (
	"errors"

	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// ErrReported marks a failure whose message was already shown to the user.
// Callers should exit non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// Register attaches the global flags and every command group to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Running %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
	}

	root.AddCommand(StoreCmd)
	root.AddCommand(VaultCmd)
	root.AddCommand(StateCmd)
	root.AddCommand(QueueCmd)
	root.AddCommand(ConfigCmd)
	root.AddCommand(LogCmd)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	resetStoreCommandState()
	resetVaultCommandState()
	resetStateCommandState()
	resetQueueCommandState()
	resetConfigCommandState()
	resetLogCommandState()

	for _, group := range []*cobra.Command{StoreCmd, VaultCmd, StateCmd, QueueCmd, ConfigCmd, LogCmd} {
		resetCobraFlagState(group)
	}
}

// resetCobraFlagState clears the Changed marks left by a previous Execute.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, child := range cmd.Commands() {
		resetCobraFlagState(child)
	}
}
