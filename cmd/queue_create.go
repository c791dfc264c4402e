package cmd

import (
	"context"
	"encoding/json"

	"github.com/rediacc/rdc/internal/queue"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	queueMachine  string
	queueBridge   string
	queueTeam     string
	queueVault    string
	queuePriority int
	queueParams   string
)

func init() {
	queueCreateCmd.Flags().StringVar(&queueMachine, "machine", "", "target machine")
	queueCreateCmd.Flags().StringVar(&queueBridge, "bridge", "", "bridge that should run the task")
	queueCreateCmd.Flags().StringVar(&queueTeam, "team", "", "owning team (required)")
	queueCreateCmd.Flags().StringVar(&queueVault, "vault-content", "", "vault content passed to the task")
	queueCreateCmd.Flags().IntVar(&queuePriority, "priority", 3, "task priority")
	queueCreateCmd.Flags().StringVar(&queueParams, "params", "", "JSON object of function parameters")

	QueueCmd.AddCommand(queueCreateCmd)
}

func resetQueueCreateCommandState() {
	queueMachine = ""
	queueBridge = ""
	queueTeam = ""
	queueVault = ""
	queuePriority = 3
	queueParams = ""
}

var queueCreateCmd = &cobra.Command{
	Use:   "create <function>",
	Short: "Add a pending task",
	Long: `Adds a pending task.

Examples:
  rdc queue create backup --team ops --machine web-1
  rdc queue create deploy --team ops --params '{"repo":"api"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Creating task...", verbose)
		defer cleanup()

		req := queue.CreateRequest{
			FunctionName: args[0],
			MachineName:  queueMachine,
			BridgeName:   queueBridge,
			TeamName:     queueTeam,
			VaultContent: queueVault,
			Priority:     queuePriority,
		}
		if queueParams != "" {
			req.Params = json.RawMessage(queueParams)
		}

		item, err := workflows.QueueCreate(context.Background(), workflows.QueueCreateOptions{Request: req, Log: Logger})
		if err != nil {
			return reportError(spinner, "Create task", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created task " + ui.Code.Sprint(item.TaskID) + " " + ui.Status(string(item.Status))
		return nil
	},
}
