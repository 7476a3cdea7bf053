package ec2

type VPCInfo struct {
	VPCID string
	CIDR  string
	Tags  map[string]string
}

type SubnetInfo struct {
	SubnetID string
	AZ       string
}

// IngressRule is one inbound permission of a security group, flattened
// to a single CIDR and port interval.
type IngressRule struct {
	CIDR     string
	Protocol string
	FromPort int
	ToPort   int
}

type SecurityGroupRules struct {
	GroupID string
	Ingress []IngressRule
}

type RouteEntry struct {
	Destination string // CIDR block
	Target      string // pcx-xxx, igw-xxx, nat-xxx, local, etc.
	Status      string // active, blackhole
}

type RouteTableInfo struct {
	RouteTableID string
	IsMain       bool
	Routes       []RouteEntry
}

type PeeringInfo struct {
	PeeringID     string
	Status        string // active, pending-acceptance, failed, ...
	RequesterCIDR string
	AccepterCIDR  string
}
