package cmd

import (
	"context"

	"github.com/rediacc/rdc/internal/configs"
	"github.com/rediacc/rdc/internal/ui"
	"github.com/rediacc/rdc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	s3Endpoint  string
	s3Region    string
	s3Bucket    string
	s3Prefix    string
	s3AccessKey string
	s3SecretKey string
	s3PathStyle bool
	s3Verify    bool
)

func init() {
	configSetS3Cmd.Flags().StringVar(&s3Endpoint, "endpoint", "", "S3-compatible endpoint URL (empty uses AWS)")
	configSetS3Cmd.Flags().StringVar(&s3Region, "region", "", "bucket region")
	configSetS3Cmd.Flags().StringVar(&s3Bucket, "bucket", "", "bucket name (required)")
	configSetS3Cmd.Flags().StringVar(&s3Prefix, "prefix", "", "key prefix inside the bucket")
	configSetS3Cmd.Flags().StringVar(&s3AccessKey, "access-key-id", "", "static access key id (empty uses the AWS credential chain)")
	configSetS3Cmd.Flags().StringVar(&s3SecretKey, "secret-access-key", "", "static secret access key")
	configSetS3Cmd.Flags().BoolVar(&s3PathStyle, "path-style", false, "use path-style addressing")
	configSetS3Cmd.Flags().BoolVar(&s3Verify, "verify", false, "check that the bucket is reachable before saving")

	ConfigCmd.AddCommand(configSetS3Cmd)
}

func resetConfigSetS3CommandState() {
	s3Endpoint = ""
	s3Region = ""
	s3Bucket = ""
	s3Prefix = ""
	s3AccessKey = ""
	s3SecretKey = ""
	s3PathStyle = false
	s3Verify = false
}

var configSetS3Cmd = &cobra.Command{
	Use:   "set-s3",
	Short: "Configure the bucket used for vaults, state and the queue",
	Long: `Configures the S3-compatible bucket used for vaults, state and the queue.

Examples:
  rdc config set-s3 --bucket rdc-prod --prefix team-a --region eu-west-1
  rdc config set-s3 --bucket rdc --endpoint http://localhost:9000 --path-style --verify`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Saving object store settings...", verbose)
		defer cleanup()

		err := workflows.SetObjectStore(context.Background(), workflows.SetObjectStoreOptions{
			S3: configs.S3Config{
				Endpoint:        s3Endpoint,
				Region:          s3Region,
				Bucket:          s3Bucket,
				Prefix:          s3Prefix,
				AccessKeyID:     s3AccessKey,
				SecretAccessKey: s3SecretKey,
				ForcePathStyle:  s3PathStyle,
			},
			Verify: s3Verify,
			Log:    Logger,
		})
		if err != nil {
			return reportError(spinner, "Save object store settings", err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Using bucket " + ui.Highlight.Sprint(s3Bucket)
		return nil
	},
}
