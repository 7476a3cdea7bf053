package pce

import (
	"context"
	"fmt"
	"strings"

	"pce-validator/internal/aws/ec2"
	"pce-validator/internal/aws/ecs"
)

// EC2Gateway is the slice of the EC2 client the provider reads.
type EC2Gateway interface {
	FindVPCByTag(ctx context.Context, key, value string) (*ec2.VPCInfo, error)
	ListSubnets(ctx context.Context, vpcID string) ([]ec2.SubnetInfo, error)
	ListIngressRules(ctx context.Context, vpcID string) ([]ec2.SecurityGroupRules, error)
	GetRouteTable(ctx context.Context, vpcID string) (*ec2.RouteTableInfo, error)
	GetVPCPeering(ctx context.Context, vpcID string) (*ec2.PeeringInfo, error)
}

// ECSGateway is the slice of the ECS client the provider reads.
type ECSGateway interface {
	GetTaskDefinition(ctx context.Context, name string) (*ecs.TaskDefinitionInfo, error)
}

// Provider assembles a PCE snapshot from live cloud state.
type Provider struct {
	ec2    EC2Gateway
	ecs    ECSGateway
	region string
}

func NewProvider(ec2gw EC2Gateway, ecsgw ECSGateway, region string) *Provider {
	return &Provider{ec2: ec2gw, ecs: ecsgw, region: region}
}

// TaskDefinitionName returns the task definition family registered for
// a PCE.
func TaskDefinitionName(pceID string) string {
	return "onedocker-task-" + pceID
}

// Snapshot reads every resource of the PCE and freezes it into one
// read-only snapshot for validation.
func (p *Provider) Snapshot(ctx context.Context, pceID string) (*PCE, error) {
	vpc, err := p.ec2.FindVPCByTag(ctx, IDTagKey, pceID)
	if err != nil {
		return nil, fmt.Errorf("resolving VPC of PCE %s: %w", pceID, err)
	}
	if vpc == nil {
		return nil, fmt.Errorf("no VPC tagged %s=%s in %s", IDTagKey, pceID, p.region)
	}

	subnets, err := p.ec2.ListSubnets(ctx, vpc.VPCID)
	if err != nil {
		return nil, fmt.Errorf("listing subnets of %s: %w", vpc.VPCID, err)
	}

	groups, err := p.ec2.ListIngressRules(ctx, vpc.VPCID)
	if err != nil {
		return nil, fmt.Errorf("listing security groups of %s: %w", vpc.VPCID, err)
	}

	routeTable, err := p.ec2.GetRouteTable(ctx, vpc.VPCID)
	if err != nil {
		return nil, fmt.Errorf("resolving route table of %s: %w", vpc.VPCID, err)
	}

	peering, err := p.ec2.GetVPCPeering(ctx, vpc.VPCID)
	if err != nil {
		return nil, fmt.Errorf("resolving peering of %s: %w", vpc.VPCID, err)
	}

	taskDef, err := p.ecs.GetTaskDefinition(ctx, TaskDefinitionName(pceID))
	if err != nil {
		return nil, fmt.Errorf("resolving task definition of PCE %s: %w", pceID, err)
	}

	env := &PCE{
		ID: pceID,
		Network: Network{
			Region: p.region,
			VPC: VPC{
				ID:   vpc.VPCID,
				CIDR: vpc.CIDR,
				Tags: vpc.Tags,
			},
		},
		Compute: Compute{
			ContainerDefinition: ContainerDefinition{
				CPU:    taskDef.CPU,
				Memory: taskDef.Memory,
				Image:  taskDef.Image,
			},
		},
	}

	for _, s := range subnets {
		env.Network.Subnets = append(env.Network.Subnets, Subnet{
			ID:               s.SubnetID,
			AvailabilityZone: s.AZ,
		})
	}

	for _, g := range groups {
		ruleset := FirewallRuleset{OwnerID: g.GroupID}
		for _, r := range g.Ingress {
			ruleset.Ingress = append(ruleset.Ingress, FirewallRule{
				CIDR:     r.CIDR,
				FromPort: r.FromPort,
				ToPort:   r.ToPort,
			})
		}
		env.Network.FirewallRulesets = append(env.Network.FirewallRulesets, ruleset)
	}

	if routeTable != nil {
		env.Network.RouteTable.ID = routeTable.RouteTableID
		for _, r := range routeTable.Routes {
			targetType, targetID := classifyRouteTarget(r.Target)
			env.Network.RouteTable.Routes = append(env.Network.RouteTable.Routes, Route{
				DestinationCIDR: r.Destination,
				State:           classifyRouteState(r.Status),
				Target:          RouteTarget{Type: targetType, ID: targetID},
			})
		}
	}

	if peering != nil {
		env.Network.Peering = &VPCPeering{
			ID:     peering.PeeringID,
			Status: classifyPeeringState(peering.Status),
		}
	}

	return env, nil
}

func classifyRouteTarget(target string) (RouteTargetType, string) {
	switch {
	case strings.HasPrefix(target, "pcx-"):
		return RouteTargetVPCPeering, target
	case strings.HasPrefix(target, "igw-"):
		return RouteTargetInternet, target
	default:
		return RouteTargetOther, target
	}
}

func classifyRouteState(status string) RouteState {
	switch status {
	case "active":
		return RouteStateActive
	case "blackhole":
		return RouteStateInactive
	default:
		return RouteStateUnknown
	}
}

func classifyPeeringState(status string) PeeringState {
	switch status {
	case "active":
		return PeeringStateActive
	case "initiating-request", "pending-acceptance", "provisioning":
		return PeeringStatePending
	default:
		return PeeringStateFailed
	}
}
