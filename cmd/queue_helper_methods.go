package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/spf13/cobra"
)

// transitionCommand builds a command that moves one task between statuses.
func transitionCommand(use, short, action, progress string, run func(ctx context.Context, taskID string) (*queue.Item, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner, cleanup := startSpinner(progress, verbose)
			defer cleanup()

			item, err := run(context.Background(), args[0])
			if err != nil {
				return reportError(spinner, action, err)
			}
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Task " + ui.Code.Sprint(item.TaskID) + " is now " + ui.Status(string(item.Status))
			return nil
		},
	}
}

func printItem(item *queue.Item) {
	fmt.Printf("Task      %s\n", ui.Code.Sprint(item.TaskID))
	fmt.Printf("Status    %s\n", ui.Status(string(item.Status)))
	fmt.Printf("Function  %s\n", item.FunctionName)
	fmt.Printf("Team      %s\n", item.TeamName)
	if item.MachineName != "" {
		fmt.Printf("Machine   %s\n", item.MachineName)
	}
	if item.BridgeName != "" {
		fmt.Printf("Bridge    %s\n", item.BridgeName)
	}
	fmt.Printf("Priority  %d\n", item.Priority)
	fmt.Printf("Retries   %d\n", item.RetryCount)
	fmt.Printf("Created   %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated   %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
	if item.ExitCode != nil {
		fmt.Printf("Exit code %d\n", *item.ExitCode)
	}
	if item.ErrorMessage != "" {
		fmt.Printf("Error     %s\n", ui.Error.Sprint(item.ErrorMessage))
	}
	if item.ConsoleOutput != "" {
		fmt.Println("Output:")
		for _, line := range strings.Split(strings.TrimRight(item.ConsoleOutput, "\n"), "\n") {
			fmt.Println("  " + line)
		}
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
