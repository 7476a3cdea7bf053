package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/smithy-go"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	awsclient "pce-validator/internal/aws"
	"pce-validator/internal/config"
	"pce-validator/internal/pce"
	"pce-validator/internal/report"
	"pce-validator/internal/validator"
)

func NewValidateCmd() *cobra.Command {
	var profile string
	var region string
	var pceID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a provisioned Private Computation Environment",
		Long: `Validate checks the network and compute resources of a PCE against
the standard policy: private VPC CIDR, firewall coverage of peered
networks, a live peering route, one subnet per availability zone, and
the expected container capacity and image. Only actionable findings
are reported; an empty report means the environment is compliant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)

			policy, err := cfg.BuildPolicy()
			if err != nil {
				return fmt.Errorf("building policy: %w", err)
			}

			ctx := context.Background()
			client, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return fmt.Errorf("initializing AWS client: %w", err)
			}

			provider := pce.NewProvider(client.EC2, client.ECS, client.Region)
			env, err := provider.Snapshot(ctx, pceID)
			if err != nil {
				return describeAWSError(err)
			}

			suite := validator.NewSuite(policy, client.EC2)
			findings, err := suite.ValidateNetworkAndCompute(ctx, env)
			if err != nil {
				return describeAWSError(err)
			}
			if peering := suite.ValidateVPCPeering(env); !peering.Passed() {
				findings = append(findings, peering)
			}

			rep := &report.Report{
				PCEID:     pceID,
				Region:    client.Region,
				AccountID: client.AccountID(ctx),
				Findings:  findings,
			}

			switch {
			case jsonOutput:
				if err := report.RenderJSON(os.Stdout, rep); err != nil {
					return err
				}
			case isatty.IsTerminal(os.Stdout.Fd()):
				report.Render(os.Stdout, rep)
			default:
				report.RenderPlain(os.Stdout, rep)
			}

			if rep.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pceID, "pce-id", "", "PCE identifier (value of the pce:pce-id resource tag)")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
	_ = cmd.MarkFlagRequired("pce-id")

	return cmd
}

// describeAWSError unwraps AWS API errors into a one-line message so
// the user sees the service error code instead of a transport dump.
func describeAWSError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("AWS API error %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}
