package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/ordersynth/internal/awsutil"
)

var checkAWSCmd = &cobra.Command{
	Use:   "check-aws",
	Short: "Verify AWS credentials and S3 access",
	Long: `Loads AWS credentials the way the s3 sink and Secrets Manager lookup do,
prints the caller identity from STS and lists the visible S3 buckets.`,
	RunE: checkAWS,
}

func init() {
	rootCmd.AddCommand(checkAWSCmd)
}

func checkAWS(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Println("☁️  AWS Integration Check")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	awsCfg, err := awsutil.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return err
	}
	fmt.Printf("   Region: %s\n", awsCfg.Region)

	id, err := awsutil.CallerIdentity(ctx, awsutil.NewSTSClient(awsCfg))
	if err != nil {
		fmt.Println("❌ AWS credentials not usable")
		return err
	}
	fmt.Println("✅ AWS credentials working")
	fmt.Printf("   Account: %s\n", id.Account)
	fmt.Printf("   ARN: %s\n", id.ARN)

	buckets, err := awsutil.ListBuckets(ctx, awsutil.NewS3Client(awsCfg))
	if err != nil {
		fmt.Println("❌ S3 access failed")
		return err
	}
	fmt.Printf("✅ S3 access working (%d buckets)\n", len(buckets))
	for _, b := range buckets {
		marker := " "
		if b == cfg.Sink.Bucket {
			marker = "*"
		}
		fmt.Printf("   %s %s\n", marker, b)
	}
	return nil
}
