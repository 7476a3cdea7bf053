package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsec2sdk "github.com/aws/aws-sdk-go-v2/service/ec2"
	awsecssdk "github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsec2 "pce-validator/internal/aws/ec2"
	awsecs "pce-validator/internal/aws/ecs"
)

// ServiceClient bundles the gateways one validation run needs.
type ServiceClient struct {
	EC2    *awsec2.Client
	ECS    *awsecs.Client
	Region string

	cfg aws.Config
}

// NewServiceClient loads the AWS config with optional profile and
// region overrides and wires the per-service gateways.
func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	opts := []func(*config.LoadOptions) error{}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("no AWS region configured: pass --region or set a default")
	}

	return &ServiceClient{
		EC2:    awsec2.NewClient(awsec2sdk.NewFromConfig(cfg)),
		ECS:    awsecs.NewClient(awsecssdk.NewFromConfig(cfg)),
		Region: cfg.Region,
		cfg:    cfg,
	}, nil
}

// AccountID returns the caller's AWS account ID. Returns empty string
// on error (non-fatal, used for report context only).
func (c *ServiceClient) AccountID(ctx context.Context) string {
	out, err := sts.NewFromConfig(c.cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ""
	}
	return aws.ToString(out.Account)
}
