package pce

import (
	"context"
	"errors"
	"testing"

	"pce-validator/internal/aws/ec2"
	"pce-validator/internal/aws/ecs"
)

type mockEC2Gateway struct {
	findVPCByTagFunc     func(ctx context.Context, key, value string) (*ec2.VPCInfo, error)
	listSubnetsFunc      func(ctx context.Context, vpcID string) ([]ec2.SubnetInfo, error)
	listIngressRulesFunc func(ctx context.Context, vpcID string) ([]ec2.SecurityGroupRules, error)
	getRouteTableFunc    func(ctx context.Context, vpcID string) (*ec2.RouteTableInfo, error)
	getVPCPeeringFunc    func(ctx context.Context, vpcID string) (*ec2.PeeringInfo, error)
}

func (m *mockEC2Gateway) FindVPCByTag(ctx context.Context, key, value string) (*ec2.VPCInfo, error) {
	return m.findVPCByTagFunc(ctx, key, value)
}
func (m *mockEC2Gateway) ListSubnets(ctx context.Context, vpcID string) ([]ec2.SubnetInfo, error) {
	return m.listSubnetsFunc(ctx, vpcID)
}
func (m *mockEC2Gateway) ListIngressRules(ctx context.Context, vpcID string) ([]ec2.SecurityGroupRules, error) {
	return m.listIngressRulesFunc(ctx, vpcID)
}
func (m *mockEC2Gateway) GetRouteTable(ctx context.Context, vpcID string) (*ec2.RouteTableInfo, error) {
	return m.getRouteTableFunc(ctx, vpcID)
}
func (m *mockEC2Gateway) GetVPCPeering(ctx context.Context, vpcID string) (*ec2.PeeringInfo, error) {
	return m.getVPCPeeringFunc(ctx, vpcID)
}

type mockECSGateway struct {
	getTaskDefinitionFunc func(ctx context.Context, name string) (*ecs.TaskDefinitionInfo, error)
}

func (m *mockECSGateway) GetTaskDefinition(ctx context.Context, name string) (*ecs.TaskDefinitionInfo, error) {
	return m.getTaskDefinitionFunc(ctx, name)
}

func happyEC2() *mockEC2Gateway {
	return &mockEC2Gateway{
		findVPCByTagFunc: func(ctx context.Context, key, value string) (*ec2.VPCInfo, error) {
			return &ec2.VPCInfo{
				VPCID: "vpc-abc123",
				CIDR:  "10.1.0.0/16",
				Tags:  map[string]string{IDTagKey: value},
			}, nil
		},
		listSubnetsFunc: func(ctx context.Context, vpcID string) ([]ec2.SubnetInfo, error) {
			return []ec2.SubnetInfo{
				{SubnetID: "subnet-1", AZ: "us-east-1a"},
				{SubnetID: "subnet-2", AZ: "us-east-1b"},
			}, nil
		},
		listIngressRulesFunc: func(ctx context.Context, vpcID string) ([]ec2.SecurityGroupRules, error) {
			return []ec2.SecurityGroupRules{{
				GroupID: "sg-1",
				Ingress: []ec2.IngressRule{
					{CIDR: "12.4.0.0/16", Protocol: "tcp", FromPort: 15200, ToPort: 15500},
				},
			}}, nil
		},
		getRouteTableFunc: func(ctx context.Context, vpcID string) (*ec2.RouteTableInfo, error) {
			return &ec2.RouteTableInfo{
				RouteTableID: "rtb-1",
				IsMain:       true,
				Routes: []ec2.RouteEntry{
					{Destination: "12.4.1.0/24", Target: "pcx-1", Status: "active"},
					{Destination: "0.0.0.0/0", Target: "igw-1", Status: "active"},
					{Destination: "11.0.0.0/16", Target: "nat-1", Status: "blackhole"},
				},
			}, nil
		},
		getVPCPeeringFunc: func(ctx context.Context, vpcID string) (*ec2.PeeringInfo, error) {
			return &ec2.PeeringInfo{PeeringID: "pcx-1", Status: "active"}, nil
		},
	}
}

func happyECS() *mockECSGateway {
	return &mockECSGateway{
		getTaskDefinitionFunc: func(ctx context.Context, name string) (*ecs.TaskDefinitionInfo, error) {
			if name != "onedocker-task-my-pce" {
				return nil, errors.New("unexpected task definition " + name)
			}
			return &ecs.TaskDefinitionInfo{
				Family: name,
				CPU:    4096,
				Memory: 30720,
				Image:  "example.com/one-docker-prod:latest",
			}, nil
		},
	}
}

func TestSnapshot(t *testing.T) {
	provider := NewProvider(happyEC2(), happyECS(), "us-east-1")

	env, err := provider.Snapshot(context.Background(), "my-pce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.ID != "my-pce" || env.Network.Region != "us-east-1" {
		t.Errorf("unexpected identity: %s / %s", env.ID, env.Network.Region)
	}
	if env.Network.VPC.PCEID() != "my-pce" {
		t.Errorf("PCEID() = %s, want my-pce", env.Network.VPC.PCEID())
	}
	if len(env.Network.Subnets) != 2 || env.Network.Subnets[1].AvailabilityZone != "us-east-1b" {
		t.Errorf("unexpected subnets: %+v", env.Network.Subnets)
	}
	if len(env.Network.FirewallRulesets) != 1 || env.Network.FirewallRulesets[0].OwnerID != "sg-1" {
		t.Errorf("unexpected rulesets: %+v", env.Network.FirewallRulesets)
	}

	routes := env.Network.RouteTable.Routes
	if len(routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(routes))
	}
	if routes[0].Target.Type != RouteTargetVPCPeering || routes[0].State != RouteStateActive {
		t.Errorf("unexpected peering route: %+v", routes[0])
	}
	if routes[1].Target.Type != RouteTargetInternet {
		t.Errorf("unexpected internet route: %+v", routes[1])
	}
	if routes[2].Target.Type != RouteTargetOther || routes[2].State != RouteStateInactive {
		t.Errorf("unexpected blackholed route: %+v", routes[2])
	}

	if env.Network.Peering == nil || env.Network.Peering.Status != PeeringStateActive {
		t.Errorf("unexpected peering: %+v", env.Network.Peering)
	}
	if env.Compute.ContainerDefinition.CPU != 4096 {
		t.Errorf("CPU = %d, want 4096", env.Compute.ContainerDefinition.CPU)
	}
}

func TestSnapshot_VPCNotFound(t *testing.T) {
	gw := happyEC2()
	gw.findVPCByTagFunc = func(ctx context.Context, key, value string) (*ec2.VPCInfo, error) {
		return nil, nil
	}
	provider := NewProvider(gw, happyECS(), "us-east-1")

	if _, err := provider.Snapshot(context.Background(), "my-pce"); err == nil {
		t.Fatal("expected an error for untagged account")
	}
}

func TestSnapshot_NoPeeringConnection(t *testing.T) {
	gw := happyEC2()
	gw.getVPCPeeringFunc = func(ctx context.Context, vpcID string) (*ec2.PeeringInfo, error) {
		return nil, nil
	}
	provider := NewProvider(gw, happyECS(), "us-east-1")

	env, err := provider.Snapshot(context.Background(), "my-pce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Network.Peering != nil {
		t.Errorf("expected nil peering, got %+v", env.Network.Peering)
	}
}

func TestClassifyPeeringState(t *testing.T) {
	tests := []struct {
		status string
		want   PeeringState
	}{
		{"active", PeeringStateActive},
		{"pending-acceptance", PeeringStatePending},
		{"initiating-request", PeeringStatePending},
		{"failed", PeeringStateFailed},
		{"rejected", PeeringStateFailed},
	}

	for _, tt := range tests {
		if got := classifyPeeringState(tt.status); got != tt.want {
			t.Errorf("classifyPeeringState(%q) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
