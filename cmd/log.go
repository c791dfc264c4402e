package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/audit"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logStore     string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated, queue.* matches all queue operations)")
	LogCmd.Flags().StringVar(&logStore, "store", "", "filter by store name")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logStore = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

// LogCmd shows the local audit log.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the local audit log",
	Long: `Displays the local audit log of store, vault, state and queue operations.

Examples:
  rdc log                               # View full log
  rdc log -n 10                         # Last 10 entries
  rdc log --reverse                     # Most recent first
  rdc log --operation push,delete       # Filter by operation
  rdc log --operation 'queue.*'         # All queue operations
  rdc log --since 2024-01-01            # Filter by date
  rdc log --json                        # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Store:      logStore,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		defer cleanup()
		return reportError(spinner, "Read audit log", err)
	}
	cleanup()

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
			Logger.Infof("Audit log location: %s", audit.LogPath())
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	switch {
	case logJSON:
		return printJSON(result.Entries)
	case logOneline:
		outputLogOneline(result.Entries)
	default:
		outputLogDefault(result.Entries)
	}
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDateTime(e.Timestamp)
		if len(date) >= 10 {
			date = date[:10]
		}
		fmt.Printf("%s %s %s %s\n", date, e.Actor, e.Operation, workflows.FormatDetails(e))
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-19s  %-24s  %-16s  %s\n",
			ui.Muted.Sprint(workflows.FormatDateTime(e.Timestamp)),
			e.Actor,
			ui.Highlight.Sprint(e.Operation),
			workflows.FormatDetails(e))
	}
}
