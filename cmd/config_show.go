package cmd

import (
	"context"
	"fmt"

	"github.com/rediacc/rdc/internal/configs"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the local configuration with credentials masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := workflows.ShowConfig(context.Background())
		if err != nil {
			fmt.Println(formatError("Show config", err))
			return ErrReported
		}

		fmt.Println("Config file: " + ui.Path.Sprint(summary.Path))
		fmt.Println()
		fmt.Println(ui.Highlight.Sprint("Object store"))
		if summary.S3.Bucket == "" {
			fmt.Println("  " + ui.Muted.Sprint("not configured"))
		} else {
			fmt.Println("  bucket:   " + summary.S3.Bucket)
			printIfSet("prefix", summary.S3.Prefix)
			printIfSet("endpoint", summary.S3.Endpoint)
			printIfSet("region", summary.S3.Region)
			printIfSet("key id", summary.S3.AccessKeyID)
		}
		fmt.Println()
		fmt.Println(ui.Highlight.Sprint("Stores"))
		if len(summary.Stores) == 0 {
			fmt.Println("  " + ui.Muted.Sprint("none"))
		}
		for _, s := range summary.Stores {
			fmt.Printf("  %-16s %-6s %s\n", s.Name, s.Kind, s.Location)
		}
		fmt.Println()
		fmt.Println("Master password: " + ui.Check(summary.HasPassword) + " " + ui.Muted.Sprint(configs.MasterPasswordEnv))
		return nil
	},
}

func printIfSet(label, value string) {
	if value != "" {
		fmt.Printf("  %-9s %s\n", label+":", value)
	}
}
