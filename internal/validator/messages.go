package validator

import (
	"fmt"
	"net/netip"
	"strings"
)

// ClusterResourceType names a container-definition field in messages.
type ClusterResourceType string

const (
	ResourceCPU    ClusterResourceType = "Cpu"
	ResourceMemory ClusterResourceType = "Memory"
	ResourceImage  ClusterResourceType = "Image"
)

// Message construction is kept apart from the checks so texts stay
// independently testable. Each function is pure in its parameters.

const (
	hintFirewallInvalidRulesets = "Update the security group ingress rules to cover each peered network on the expected port range"

	msgRouteTablePeeringMissing  = "vpc peering route missing: no active route targets a peering connection"
	hintRouteTablePeeringMissing = "Add a route to the peer network targeting the peering connection and make sure the connection is active"

	msgNotAllAZUsed = "not all availability zones are used by the PCE subnets"

	hintClusterWrongValues = "Update the container definition to the standard PCE capacity"

	msgPeeringMissing  = "vpc peering connection not found"
	hintPeeringMissing = "Create a peering connection between the partner VPCs"
	hintPeeringStatus  = "Accept the peering request from the partner account"
)

func msgNonPrivateCIDR(vpcID, cidr string) string {
	return fmt.Sprintf("VPC %s CIDR %s is not inside a private range", vpcID, cidr)
}

func hintNonPrivateCIDR(ranges []netip.Prefix) string {
	return fmt.Sprintf("Recreate the PCE VPC with a CIDR contained in one of: %s", describeRanges(ranges))
}

func msgFirewallRulesNotFound(pceID string) string {
	return fmt.Sprintf("firewall rules not found for PCE %s", pceID)
}

func msgFirewallInvalidRulesets(reasons []string) string {
	return fmt.Sprintf("invalid firewall rulesets: %s", strings.Join(reasons, ", "))
}

func msgFirewallFlaggedRulesets(reasons []string) string {
	return fmt.Sprintf("flagged firewall rulesets: %s", strings.Join(reasons, ", "))
}

func msgFirewallCIDRNotOverlapsVPC(peerTargetID, vpcID, vpcCIDR string) string {
	return fmt.Sprintf("CIDR of peer target %s not overlaps any ingress rule of VPC %s (%s)",
		peerTargetID, vpcID, vpcCIDR)
}

func msgFirewallCantContainRange(owner, ruleCIDR string, fromPort, toPort, initialPort, finalPort int) string {
	return fmt.Sprintf("ruleset %s rule %s ports [%d,%d] can't contain expected range [%d,%d]",
		owner, ruleCIDR, fromPort, toPort, initialPort, finalPort)
}

func msgFirewallExceedsRange(owner, ruleCIDR string, fromPort, toPort, initialPort, finalPort int) string {
	return fmt.Sprintf("ruleset %s rule %s ports [%d,%d] exceed expected range [%d,%d]",
		owner, ruleCIDR, fromPort, toPort, initialPort, finalPort)
}

func hintNotAllAZUsed(region string, azs []string) string {
	return fmt.Sprintf("Spread one subnet over each availability zone of %s: %s",
		region, strings.Join(azs, ","))
}

func msgClusterWrongValues(reasons []string) string {
	return fmt.Sprintf("container definition has wrong values: %s", strings.Join(reasons, ", "))
}

func msgClusterFlaggedValues(reasons []string) string {
	return fmt.Sprintf("container definition has flagged values: %s", strings.Join(reasons, ", "))
}

func msgClusterWrongValue(resource ClusterResourceType, value, expected any) string {
	return fmt.Sprintf("value of %s is %v, expected %v", resource, value, expected)
}

func msgPeeringNotActive(status string) string {
	return fmt.Sprintf("vpc peering connection is not active (status %s)", status)
}

func describeRanges(ranges []netip.Prefix) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
