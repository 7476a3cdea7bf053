package validator

import (
	"context"
	"fmt"
	"net/netip"

	"pce-validator/internal/pce"
)

// AvailabilityZoneAPI is the one outbound capability the suite needs:
// the ordered availability zone names of a region. Injectable so tests
// can substitute it.
type AvailabilityZoneAPI interface {
	DescribeAvailabilityZones(ctx context.Context, region string) ([]string, error)
}

// Suite runs the PCE checks. It holds no state beyond its
// construction-time policy and AZ lookup, so one Suite may validate
// independent snapshots concurrently.
type Suite struct {
	policy Policy
	azs    AvailabilityZoneAPI
}

func NewSuite(policy Policy, azs AvailabilityZoneAPI) *Suite {
	return &Suite{policy: policy, azs: azs}
}

// ValidatePrivateCIDR checks the VPC CIDR falls entirely within one of
// the policy's private ranges. A malformed CIDR is a data-integrity
// failure and returns an error, not a finding.
func (s *Suite) ValidatePrivateCIDR(env *pce.PCE) (Result, error) {
	vpc := env.Network.VPC
	prefix, err := netip.ParsePrefix(vpc.CIDR)
	if err != nil {
		return Result{}, fmt.Errorf("parsing VPC %s CIDR: %w", vpc.ID, err)
	}
	for _, r := range s.policy.PrivateRanges {
		if prefixContains(r, prefix) {
			return success(), nil
		}
	}
	return Result{
		Code:         CodeError,
		Description:  msgNonPrivateCIDR(vpc.ID, vpc.CIDR),
		SolutionHint: hintNonPrivateCIDR(s.policy.PrivateRanges),
	}, nil
}

// ValidateFirewall checks that for every active peering route some
// ingress rule's CIDR fully contains the route destination and that
// rule's port interval covers the expected application range. A rule
// wider than the expected range is flagged, not failed.
func (s *Suite) ValidateFirewall(env *pce.PCE) (Result, error) {
	network := env.Network
	if len(network.FirewallRulesets) == 0 {
		return Result{
			Code:        CodeError,
			Description: msgFirewallRulesNotFound(network.VPC.PCEID()),
		}, nil
	}

	var errorReasons, warningReasons []string
	for _, route := range network.RouteTable.Routes {
		if route.State != pce.RouteStateActive || route.Target.Type != pce.RouteTargetVPCPeering {
			continue
		}
		peer, err := netip.ParsePrefix(route.DestinationCIDR)
		if err != nil {
			return Result{}, fmt.Errorf("parsing route destination %s: %w", route.DestinationCIDR, err)
		}

		rule, owner, err := findCoveringRule(network.FirewallRulesets, peer)
		if err != nil {
			return Result{}, err
		}
		if rule == nil {
			errorReasons = append(errorReasons,
				msgFirewallCIDRNotOverlapsVPC(route.Target.ID, network.VPC.ID, network.VPC.CIDR))
			continue
		}
		switch {
		case rule.FromPort > s.policy.InitialPort || rule.ToPort < s.policy.FinalPort:
			errorReasons = append(errorReasons,
				msgFirewallCantContainRange(owner, rule.CIDR, rule.FromPort, rule.ToPort,
					s.policy.InitialPort, s.policy.FinalPort))
		case rule.FromPort < s.policy.InitialPort || rule.ToPort > s.policy.FinalPort:
			warningReasons = append(warningReasons,
				msgFirewallExceedsRange(owner, rule.CIDR, rule.FromPort, rule.ToPort,
					s.policy.InitialPort, s.policy.FinalPort))
		}
	}

	if len(errorReasons) > 0 {
		return Result{
			Code:         CodeError,
			Description:  msgFirewallInvalidRulesets(errorReasons),
			SolutionHint: hintFirewallInvalidRulesets,
		}, nil
	}
	if len(warningReasons) > 0 {
		return Result{
			Code:        CodeWarning,
			Description: msgFirewallFlaggedRulesets(warningReasons),
		}, nil
	}
	return success(), nil
}

// findCoveringRule returns the first ingress rule whose CIDR fully
// contains peer, along with the owning ruleset id. Nil when no rule
// covers the peer.
func findCoveringRule(rulesets []pce.FirewallRuleset, peer netip.Prefix) (*pce.FirewallRule, string, error) {
	for _, rs := range rulesets {
		for i := range rs.Ingress {
			rule := &rs.Ingress[i]
			rulePrefix, err := netip.ParsePrefix(rule.CIDR)
			if err != nil {
				return nil, "", fmt.Errorf("parsing ruleset %s rule CIDR %s: %w", rs.OwnerID, rule.CIDR, err)
			}
			if prefixContains(rulePrefix, peer) {
				return rule, rs.OwnerID, nil
			}
		}
	}
	return nil, "", nil
}

// ValidateRouteTable checks a live peering route exists: at least one
// route that is active and targets a peering connection.
func (s *Suite) ValidateRouteTable(env *pce.PCE) Result {
	for _, route := range env.Network.RouteTable.Routes {
		if route.State == pce.RouteStateActive && route.Target.Type == pce.RouteTargetVPCPeering {
			return success()
		}
	}
	return Result{
		Code:         CodeError,
		Description:  msgRouteTablePeeringMissing,
		SolutionHint: hintRouteTablePeeringMissing,
	}
}

// ValidateSubnets checks the subnets cover every availability zone of
// the region exactly once.
func (s *Suite) ValidateSubnets(ctx context.Context, env *pce.PCE) (Result, error) {
	region := env.Network.Region
	azs, err := s.azs.DescribeAvailabilityZones(ctx, region)
	if err != nil {
		return Result{}, fmt.Errorf("describing availability zones of %s: %w", region, err)
	}

	counts := make(map[string]int, len(env.Network.Subnets))
	for _, subnet := range env.Network.Subnets {
		counts[subnet.AvailabilityZone]++
	}
	covered := len(env.Network.Subnets) == len(azs)
	for _, az := range azs {
		if counts[az] != 1 {
			covered = false
			break
		}
	}
	if covered {
		return success(), nil
	}
	return Result{
		Code:         CodeError,
		Description:  msgNotAllAZUsed,
		SolutionHint: hintNotAllAZUsed(region, azs),
	}, nil
}

// ValidateClusterDefinition checks compute capacity and image against
// the policy. Capacity must match exactly; a different image is only
// flagged, and is suppressed while any capacity mismatch exists.
func (s *Suite) ValidateClusterDefinition(env *pce.PCE) Result {
	def := env.Compute.ContainerDefinition

	var errorReasons []string
	if def.CPU != s.policy.ContainerCPU {
		errorReasons = append(errorReasons,
			msgClusterWrongValue(ResourceCPU, def.CPU, s.policy.ContainerCPU))
	}
	if def.Memory != s.policy.ContainerMemory {
		errorReasons = append(errorReasons,
			msgClusterWrongValue(ResourceMemory, def.Memory, s.policy.ContainerMemory))
	}
	if len(errorReasons) > 0 {
		return Result{
			Code:         CodeError,
			Description:  msgClusterWrongValues(errorReasons),
			SolutionHint: hintClusterWrongValues,
		}
	}
	if def.Image != s.policy.ContainerImage {
		return Result{
			Code: CodeWarning,
			Description: msgClusterFlaggedValues([]string{
				msgClusterWrongValue(ResourceImage, def.Image, s.policy.ContainerImage),
			}),
		}
	}
	return success()
}

// ValidateVPCPeering checks the peering connection between the partner
// VPCs exists and is active. Not part of the fixed aggregate order.
func (s *Suite) ValidateVPCPeering(env *pce.PCE) Result {
	peering := env.Network.Peering
	if peering == nil {
		return Result{
			Code:         CodeError,
			Description:  msgPeeringMissing,
			SolutionHint: hintPeeringMissing,
		}
	}
	if peering.Status != pce.PeeringStateActive {
		return Result{
			Code:         CodeError,
			Description:  msgPeeringNotActive(string(peering.Status)),
			SolutionHint: hintPeeringStatus,
		}
	}
	return success()
}

// ValidateNetworkAndCompute runs every check over one snapshot and
// returns the non-passing findings in check order. An empty slice
// means the environment is fully compliant. The first data-integrity
// or gateway error aborts the run with no partial findings.
func (s *Suite) ValidateNetworkAndCompute(ctx context.Context, env *pce.PCE) ([]Result, error) {
	var findings []Result
	keep := func(r Result) {
		if !r.Passed() {
			findings = append(findings, r)
		}
	}

	r, err := s.ValidatePrivateCIDR(env)
	if err != nil {
		return nil, err
	}
	keep(r)

	r, err = s.ValidateFirewall(env)
	if err != nil {
		return nil, err
	}
	keep(r)

	keep(s.ValidateRouteTable(env))

	r, err = s.ValidateSubnets(ctx, env)
	if err != nil {
		return nil, err
	}
	keep(r)

	keep(s.ValidateClusterDefinition(env))

	return findings, nil
}

// prefixContains reports whether outer fully contains inner: every
// address of inner is inside outer.
func prefixContains(outer, inner netip.Prefix) bool {
	return outer.Bits() <= inner.Bits() && outer.Contains(inner.Masked().Addr())
}
