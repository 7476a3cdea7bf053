package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type EC2API interface {
	DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	DescribeRouteTables(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error)
	DescribeVpcPeeringConnections(ctx context.Context, params *awsec2.DescribeVpcPeeringConnectionsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcPeeringConnectionsOutput, error)
	DescribeAvailabilityZones(ctx context.Context, params *awsec2.DescribeAvailabilityZonesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeAvailabilityZonesOutput, error)
}

type Client struct {
	api EC2API
}

func NewClient(api EC2API) *Client {
	return &Client{api: api}
}

func tagsToMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return m
}

// FindVPCByTag returns the first VPC carrying the given tag, or nil
// when none matches.
func (c *Client) FindVPCByTag(ctx context.Context, key, value string) (*VPCInfo, error) {
	out, err := c.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:" + key), Values: []string{value}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeVpcs: %w", err)
	}
	if len(out.Vpcs) == 0 {
		return nil, nil
	}

	v := out.Vpcs[0]
	return &VPCInfo{
		VPCID: aws.ToString(v.VpcId),
		CIDR:  aws.ToString(v.CidrBlock),
		Tags:  tagsToMap(v.Tags),
	}, nil
}

func (c *Client) ListSubnets(ctx context.Context, vpcID string) ([]SubnetInfo, error) {
	var subnets []SubnetInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
			Filters: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSubnets: %w", err)
		}

		for _, s := range out.Subnets {
			subnets = append(subnets, SubnetInfo{
				SubnetID: aws.ToString(s.SubnetId),
				AZ:       aws.ToString(s.AvailabilityZone),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return subnets, nil
}

// ListIngressRules returns the inbound permissions of every security
// group of the VPC, one flattened rule per (permission, CIDR) pair. A
// permission with no port interval (all traffic) spans the full port
// space.
func (c *Client) ListIngressRules(ctx context.Context, vpcID string) ([]SecurityGroupRules, error) {
	var groups []SecurityGroupRules
	var nextToken *string

	for {
		out, err := c.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
			Filters: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroups: %w", err)
		}

		for _, sg := range out.SecurityGroups {
			group := SecurityGroupRules{GroupID: aws.ToString(sg.GroupId)}
			for _, perm := range sg.IpPermissions {
				fromPort, toPort := portInterval(perm)
				for _, r := range perm.IpRanges {
					group.Ingress = append(group.Ingress, IngressRule{
						CIDR:     aws.ToString(r.CidrIp),
						Protocol: aws.ToString(perm.IpProtocol),
						FromPort: fromPort,
						ToPort:   toPort,
					})
				}
			}
			groups = append(groups, group)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return groups, nil
}

func portInterval(perm types.IpPermission) (int, int) {
	if perm.FromPort == nil || perm.ToPort == nil || aws.ToInt32(perm.FromPort) == -1 {
		return 0, 65535
	}
	return int(aws.ToInt32(perm.FromPort)), int(aws.ToInt32(perm.ToPort))
}

// GetRouteTable returns the main route table of the VPC, falling back
// to the first associated one. Nil when the VPC has no route table.
func (c *Client) GetRouteTable(ctx context.Context, vpcID string) (*RouteTableInfo, error) {
	var tables []RouteTableInfo
	var nextToken *string

	for {
		out, err := c.api.DescribeRouteTables(ctx, &awsec2.DescribeRouteTablesInput{
			Filters: []types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeRouteTables: %w", err)
		}

		for _, rt := range out.RouteTables {
			info := RouteTableInfo{RouteTableID: aws.ToString(rt.RouteTableId)}
			for _, assoc := range rt.Associations {
				if aws.ToBool(assoc.Main) {
					info.IsMain = true
					break
				}
			}
			for _, r := range rt.Routes {
				info.Routes = append(info.Routes, RouteEntry{
					Destination: aws.ToString(r.DestinationCidrBlock),
					Target:      routeTarget(r),
					Status:      string(r.State),
				})
			}
			tables = append(tables, info)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	for i := range tables {
		if tables[i].IsMain {
			return &tables[i], nil
		}
	}
	if len(tables) > 0 {
		return &tables[0], nil
	}
	return nil, nil
}

func routeTarget(r types.Route) string {
	switch {
	case r.VpcPeeringConnectionId != nil:
		return aws.ToString(r.VpcPeeringConnectionId)
	case r.GatewayId != nil:
		return aws.ToString(r.GatewayId)
	case r.NatGatewayId != nil:
		return aws.ToString(r.NatGatewayId)
	case r.TransitGatewayId != nil:
		return aws.ToString(r.TransitGatewayId)
	case r.NetworkInterfaceId != nil:
		return aws.ToString(r.NetworkInterfaceId)
	case r.InstanceId != nil:
		return aws.ToString(r.InstanceId)
	default:
		return ""
	}
}

// GetVPCPeering returns the peering connection the VPC takes part in,
// as requester or accepter. Nil when no connection exists.
func (c *Client) GetVPCPeering(ctx context.Context, vpcID string) (*PeeringInfo, error) {
	for _, filter := range []string{"requester-vpc-info.vpc-id", "accepter-vpc-info.vpc-id"} {
		out, err := c.api.DescribeVpcPeeringConnections(ctx, &awsec2.DescribeVpcPeeringConnectionsInput{
			Filters: []types.Filter{
				{Name: aws.String(filter), Values: []string{vpcID}},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeVpcPeeringConnections: %w", err)
		}
		if len(out.VpcPeeringConnections) == 0 {
			continue
		}

		conn := out.VpcPeeringConnections[0]
		info := &PeeringInfo{PeeringID: aws.ToString(conn.VpcPeeringConnectionId)}
		if conn.Status != nil {
			info.Status = string(conn.Status.Code)
		}
		if conn.RequesterVpcInfo != nil {
			info.RequesterCIDR = aws.ToString(conn.RequesterVpcInfo.CidrBlock)
		}
		if conn.AccepterVpcInfo != nil {
			info.AccepterCIDR = aws.ToString(conn.AccepterVpcInfo.CidrBlock)
		}
		return info, nil
	}
	return nil, nil
}

// DescribeAvailabilityZones returns the zone names of the region, in
// the order the API reports them.
func (c *Client) DescribeAvailabilityZones(ctx context.Context, region string) ([]string, error) {
	out, err := c.api.DescribeAvailabilityZones(ctx, &awsec2.DescribeAvailabilityZonesInput{
		Filters: []types.Filter{
			{Name: aws.String("region-name"), Values: []string{region}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeAvailabilityZones: %w", err)
	}

	var zones []string
	for _, az := range out.AvailabilityZones {
		zones = append(zones, aws.ToString(az.ZoneName))
	}
	return zones, nil
}
