// Package pce models a Private Computation Environment snapshot: the
// network and compute resources a party provisions in its own account
// to take part in a joint computation. Snapshots are read-only value
// objects assembled from live AWS state immediately before validation.
package pce

// IDTagKey is the resource tag that ties AWS resources to a PCE.
const IDTagKey = "pce:pce-id"

type VPC struct {
	ID   string
	CIDR string
	Tags map[string]string
}

// PCEID returns the PCE identifier from the VPC tags, if tagged.
func (v VPC) PCEID() string {
	return v.Tags[IDTagKey]
}

type RouteState string

const (
	RouteStateActive   RouteState = "ACTIVE"
	RouteStateInactive RouteState = "INACTIVE"
	RouteStateUnknown  RouteState = "UNKNOWN"
)

type RouteTargetType string

const (
	RouteTargetVPCPeering RouteTargetType = "VPC_PEERING"
	RouteTargetInternet   RouteTargetType = "INTERNET"
	RouteTargetOther      RouteTargetType = "OTHER"
)

type RouteTarget struct {
	Type RouteTargetType
	ID   string
}

type Route struct {
	DestinationCIDR string
	State           RouteState
	Target          RouteTarget
}

type RouteTable struct {
	ID     string
	Routes []Route
}

// FirewallRule is one allowed inbound CIDR and port interval.
type FirewallRule struct {
	CIDR     string
	FromPort int
	ToPort   int
}

// FirewallRuleset groups the ingress rules of one security group.
type FirewallRuleset struct {
	OwnerID string
	Ingress []FirewallRule
}

type Subnet struct {
	ID               string
	AvailabilityZone string
}

type PeeringState string

const (
	PeeringStateActive  PeeringState = "ACTIVE"
	PeeringStatePending PeeringState = "PENDING"
	PeeringStateFailed  PeeringState = "FAILED"
)

type VPCPeering struct {
	ID     string
	Status PeeringState
}

// ContainerDefinition carries the task-level capacity and image of the
// compute cluster registered for the PCE.
type ContainerDefinition struct {
	CPU    int
	Memory int
	Image  string
}

type Network struct {
	Region           string
	VPC              VPC
	RouteTable       RouteTable
	FirewallRulesets []FirewallRuleset
	Subnets          []Subnet
	Peering          *VPCPeering
}

type Compute struct {
	ContainerDefinition ContainerDefinition
}

// PCE is one snapshot of a provisioned environment. The validation
// suite never mutates it.
type PCE struct {
	ID      string
	Network Network
	Compute Compute
}
