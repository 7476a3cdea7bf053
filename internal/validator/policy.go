package validator

import "net/netip"

// Default standard values a PCE is validated against. All of them can
// be overridden through the policy block of the config file.
const (
	DefaultInitialPort     = 15200
	DefaultFinalPort       = 15500
	DefaultContainerCPU    = 4096
	DefaultContainerMemory = 30720
	DefaultContainerImage  = "539290649537.dkr.ecr.us-west-2.amazonaws.com/one-docker-prod:latest"
)

// Policy holds the comparison standards the suite checks against.
type Policy struct {
	// PrivateRanges are the address blocks a VPC CIDR must fall into.
	PrivateRanges []netip.Prefix
	// InitialPort and FinalPort bound the application port interval
	// every peered network must be reachable on.
	InitialPort int
	FinalPort   int

	ContainerCPU    int
	ContainerMemory int
	ContainerImage  string
}

// DefaultPolicy returns the standard PCE policy: the three canonical
// RFC 1918 ranges and the stock container expectations.
func DefaultPolicy() Policy {
	return Policy{
		PrivateRanges: []netip.Prefix{
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("172.16.0.0/12"),
			netip.MustParsePrefix("192.168.0.0/16"),
		},
		InitialPort:     DefaultInitialPort,
		FinalPort:       DefaultFinalPort,
		ContainerCPU:    DefaultContainerCPU,
		ContainerMemory: DefaultContainerMemory,
		ContainerImage:  DefaultContainerImage,
	}
}
