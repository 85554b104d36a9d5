// Package awsutil wraps the AWS SDK clients ordersynth talks to: S3 for CSV
// exports, Secrets Manager for database credentials and STS for the
// check-aws smoke test.
package awsutil

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/matthieukhl/ordersynth/internal/config"
)

// LoadAWSConfig loads the default credential chain with the configured
// region. A non-empty endpoint (LocalStack, MinIO) is applied to every client.
func LoadAWSConfig(ctx context.Context, cfg config.AWSConfig) (sdkaws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awsCfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	return awsCfg, nil
}
