package catalog

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
	"github.com/imamik/ec2ctl/internal/util/ptr"
	"github.com/imamik/ec2ctl/internal/util/tags"
)

func routingOperations() []Command {
	return []Command{
		describeRouteTables(),
		createRouteTable(),
		deleteRouteTable(),
		createRoute(),
		replaceRoute(),
		deleteRoute(),
		associateRouteTable(),
		disassociateRouteTable(),
		createInternetGateway(),
		deleteInternetGateway(),
		attachInternetGateway(),
		detachInternetGateway(),
	}
}

type describeRouteTablesParams struct {
	RouteTableIDs []string
	Filters       []types.Filter
	DryRun        *bool
}

func describeRouteTables() *operation[describeRouteTablesParams, ec2.DescribeRouteTablesInput, ec2.DescribeRouteTablesOutput] {
	return &operation[describeRouteTablesParams, ec2.DescribeRouteTablesInput, ec2.DescribeRouteTablesOutput]{
		Name:  "describe-route-tables",
		Group: GroupRouting,
		Short: "Describe route tables",
		Params: func(p *describeRouteTablesParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.RouteTableIDs, "route-table-ids", "Route table IDs").At(1).Alias("route-table-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeRouteTablesParams) *ec2.DescribeRouteTablesInput {
			return &ec2.DescribeRouteTablesInput{RouteTableIds: p.RouteTableIDs, Filters: p.Filters, DryRun: p.DryRun}
		},
		Call:   call(platform.API.DescribeRouteTables),
		Output: func(out *ec2.DescribeRouteTablesOutput) any { return out.RouteTables },
		Pages: &cmdlet.Pages[ec2.DescribeRouteTablesInput, ec2.DescribeRouteTablesOutput]{
			Token:       func(out *ec2.DescribeRouteTablesOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeRouteTablesInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeRouteTablesInput, size *int32) { in.MaxResults = size },
			Count:       func(out *ec2.DescribeRouteTablesOutput) int { return len(out.RouteTables) },
		},
	}
}

type createRouteTableParams struct {
	VpcID  *string
	Tags   []types.Tag
	DryRun *bool
}

func createRouteTable() *operation[createRouteTableParams, ec2.CreateRouteTableInput, ec2.CreateRouteTableOutput] {
	return &operation[createRouteTableParams, ec2.CreateRouteTableInput, ec2.CreateRouteTableOutput]{
		Name:   "create-route-table",
		Group:  GroupRouting,
		Short:  "Create a route table in a VPC",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createRouteTableParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VpcID, "vpc-id", "VPC ID").At(1).Required(),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createRouteTableParams) string { return ptr.Deref(p.VpcID, "") },
		Request: func(p createRouteTableParams) *ec2.CreateRouteTableInput {
			return &ec2.CreateRouteTableInput{
				VpcId:             p.VpcID,
				TagSpecifications: tags.Specifications(types.ResourceTypeRouteTable, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call:   call(platform.API.CreateRouteTable),
		Output: func(out *ec2.CreateRouteTableOutput) any { return out.RouteTable },
	}
}

type routeTableIDParams struct {
	RouteTableID *string
	DryRun       *bool
}

func deleteRouteTable() *operation[routeTableIDParams, ec2.DeleteRouteTableInput, ec2.DeleteRouteTableOutput] {
	return &operation[routeTableIDParams, ec2.DeleteRouteTableInput, ec2.DeleteRouteTableOutput]{
		Name:   "delete-route-table",
		Group:  GroupRouting,
		Short:  "Delete a route table",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *routeTableIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.RouteTableID, "route-table-id", "Route table ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p routeTableIDParams) string { return ptr.Deref(p.RouteTableID, "") },
		Request: func(p routeTableIDParams) *ec2.DeleteRouteTableInput {
			return &ec2.DeleteRouteTableInput{RouteTableId: p.RouteTableID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteRouteTable),
		Output:   cmdlet.Nothing[ec2.DeleteRouteTableOutput],
		PassThru: func(p routeTableIDParams) any { return ptr.Deref(p.RouteTableID, "") },
	}
}

// routeDestination selects a route within a table.
type routeDestination struct {
	RouteTableID        *string
	DestinationCIDR     *string
	DestinationIPv6CIDR *string
	DryRun              *bool
}

func (d *routeDestination) params() []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.String(&d.RouteTableID, "route-table-id", "Route table ID").At(1).Required(),
		cmdlet.String(&d.DestinationCIDR, "destination-cidr-block", "IPv4 destination").At(2),
		cmdlet.String(&d.DestinationIPv6CIDR, "destination-ipv6-cidr-block", "IPv6 destination"),
		dryRunParam(&d.DryRun),
	}
}

func (d routeDestination) validate() error {
	if !cmdlet.AnySet(d.DestinationCIDR, d.DestinationIPv6CIDR) {
		return errors.New("one of --destination-cidr-block or --destination-ipv6-cidr-block is required")
	}
	return nil
}

func (d routeDestination) target() string {
	return ptr.Deref(d.RouteTableID, "") + " " + ptr.Deref(d.DestinationCIDR, ptr.Deref(d.DestinationIPv6CIDR, ""))
}

// routeParams adds the target of a route to its destination.
type routeParams struct {
	routeDestination
	GatewayID              *string
	InstanceID             *string
	NatGatewayID           *string
	NetworkInterfaceID     *string
	TransitGatewayID       *string
	VpcPeeringConnectionID *string
}

func (r *routeParams) params() []*cmdlet.Param {
	return append(r.routeDestination.params(),
		cmdlet.String(&r.GatewayID, "gateway-id", "Internet or virtual private gateway ID"),
		cmdlet.String(&r.InstanceID, "instance-id", "NAT instance ID"),
		cmdlet.String(&r.NatGatewayID, "nat-gateway-id", "NAT gateway ID"),
		cmdlet.String(&r.NetworkInterfaceID, "network-interface-id", "Network interface ID"),
		cmdlet.String(&r.TransitGatewayID, "transit-gateway-id", "Transit gateway ID"),
		cmdlet.String(&r.VpcPeeringConnectionID, "vpc-peering-connection-id", "VPC peering connection ID"),
	)
}

func (r routeParams) validate() error {
	if err := r.routeDestination.validate(); err != nil {
		return err
	}
	if !cmdlet.AnySet(r.GatewayID, r.InstanceID, r.NatGatewayID, r.NetworkInterfaceID,
		r.TransitGatewayID, r.VpcPeeringConnectionID) {
		return errors.New("a route target is required, for example --gateway-id")
	}
	return nil
}

func createRoute() *operation[routeParams, ec2.CreateRouteInput, ec2.CreateRouteOutput] {
	return &operation[routeParams, ec2.CreateRouteInput, ec2.CreateRouteOutput]{
		Name:    "create-route",
		Group:   GroupRouting,
		Short:   "Add a route to a route table",
		Impact:  cmdlet.ImpactLow,
		Example: `  ec2ctl create-route rtb-1 0.0.0.0/0 --gateway-id igw-1`,
		Params:  (*routeParams).params,
		Target:  func(p routeParams) string { return p.target() },
		Prepare: func(p routeParams) (routeParams, error) { return p, p.validate() },
		Request: func(p routeParams) *ec2.CreateRouteInput {
			return &ec2.CreateRouteInput{
				RouteTableId:             p.RouteTableID,
				DestinationCidrBlock:     p.DestinationCIDR,
				DestinationIpv6CidrBlock: p.DestinationIPv6CIDR,
				GatewayId:                p.GatewayID,
				InstanceId:               p.InstanceID,
				NatGatewayId:             p.NatGatewayID,
				NetworkInterfaceId:       p.NetworkInterfaceID,
				TransitGatewayId:         p.TransitGatewayID,
				VpcPeeringConnectionId:   p.VpcPeeringConnectionID,
				DryRun:                   p.DryRun,
			}
		},
		Call:     call(platform.API.CreateRoute),
		Output:   cmdlet.Nothing[ec2.CreateRouteOutput],
		PassThru: func(p routeParams) any { return ptr.Deref(p.RouteTableID, "") },
	}
}

func replaceRoute() *operation[routeParams, ec2.ReplaceRouteInput, ec2.ReplaceRouteOutput] {
	return &operation[routeParams, ec2.ReplaceRouteInput, ec2.ReplaceRouteOutput]{
		Name:    "replace-route",
		Group:   GroupRouting,
		Short:   "Change the target of an existing route",
		Impact:  cmdlet.ImpactMedium,
		Params:  (*routeParams).params,
		Target:  func(p routeParams) string { return p.target() },
		Prepare: func(p routeParams) (routeParams, error) { return p, p.validate() },
		Request: func(p routeParams) *ec2.ReplaceRouteInput {
			return &ec2.ReplaceRouteInput{
				RouteTableId:             p.RouteTableID,
				DestinationCidrBlock:     p.DestinationCIDR,
				DestinationIpv6CidrBlock: p.DestinationIPv6CIDR,
				GatewayId:                p.GatewayID,
				InstanceId:               p.InstanceID,
				NatGatewayId:             p.NatGatewayID,
				NetworkInterfaceId:       p.NetworkInterfaceID,
				TransitGatewayId:         p.TransitGatewayID,
				VpcPeeringConnectionId:   p.VpcPeeringConnectionID,
				DryRun:                   p.DryRun,
			}
		},
		Call:     call(platform.API.ReplaceRoute),
		Output:   cmdlet.Nothing[ec2.ReplaceRouteOutput],
		PassThru: func(p routeParams) any { return ptr.Deref(p.RouteTableID, "") },
	}
}

func deleteRoute() *operation[routeDestination, ec2.DeleteRouteInput, ec2.DeleteRouteOutput] {
	return &operation[routeDestination, ec2.DeleteRouteInput, ec2.DeleteRouteOutput]{
		Name:    "delete-route",
		Group:   GroupRouting,
		Short:   "Remove a route from a route table",
		Impact:  cmdlet.ImpactHigh,
		Params:  (*routeDestination).params,
		Target:  routeDestination.target,
		Prepare: func(p routeDestination) (routeDestination, error) { return p, p.validate() },
		Request: func(p routeDestination) *ec2.DeleteRouteInput {
			return &ec2.DeleteRouteInput{
				RouteTableId:             p.RouteTableID,
				DestinationCidrBlock:     p.DestinationCIDR,
				DestinationIpv6CidrBlock: p.DestinationIPv6CIDR,
				DryRun:                   p.DryRun,
			}
		},
		Call:     call(platform.API.DeleteRoute),
		Output:   cmdlet.Nothing[ec2.DeleteRouteOutput],
		PassThru: func(p routeDestination) any { return ptr.Deref(p.RouteTableID, "") },
	}
}

type associateRouteTableParams struct {
	RouteTableID *string
	SubnetID     *string
	GatewayID    *string
	DryRun       *bool
}

func associateRouteTable() *operation[associateRouteTableParams, ec2.AssociateRouteTableInput, ec2.AssociateRouteTableOutput] {
	return &operation[associateRouteTableParams, ec2.AssociateRouteTableInput, ec2.AssociateRouteTableOutput]{
		Name:   "associate-route-table",
		Group:  GroupRouting,
		Short:  "Associate a route table with a subnet or gateway",
		Impact: cmdlet.ImpactLow,
		Params: func(p *associateRouteTableParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.RouteTableID, "route-table-id", "Route table ID").At(1).Required(),
				cmdlet.String(&p.SubnetID, "subnet-id", "Subnet ID").At(2),
				cmdlet.String(&p.GatewayID, "gateway-id", "Internet or virtual private gateway ID"),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p associateRouteTableParams) string { return ptr.Deref(p.RouteTableID, "") },
		Prepare: func(p associateRouteTableParams) (associateRouteTableParams, error) {
			if !cmdlet.AnySet(p.SubnetID, p.GatewayID) {
				return p, errors.New("one of --subnet-id or --gateway-id is required")
			}
			return p, nil
		},
		Request: func(p associateRouteTableParams) *ec2.AssociateRouteTableInput {
			return &ec2.AssociateRouteTableInput{
				RouteTableId: p.RouteTableID,
				SubnetId:     p.SubnetID,
				GatewayId:    p.GatewayID,
				DryRun:       p.DryRun,
			}
		},
		Call: call(platform.API.AssociateRouteTable),
	}
}

type associationIDParams struct {
	AssociationID *string
	DryRun        *bool
}

func disassociateRouteTable() *operation[associationIDParams, ec2.DisassociateRouteTableInput, ec2.DisassociateRouteTableOutput] {
	return &operation[associationIDParams, ec2.DisassociateRouteTableInput, ec2.DisassociateRouteTableOutput]{
		Name:   "disassociate-route-table",
		Group:  GroupRouting,
		Short:  "Remove a route table association",
		Impact: cmdlet.ImpactMedium,
		Params: func(p *associationIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.AssociationID, "association-id", "Association ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p associationIDParams) string { return ptr.Deref(p.AssociationID, "") },
		Request: func(p associationIDParams) *ec2.DisassociateRouteTableInput {
			return &ec2.DisassociateRouteTableInput{AssociationId: p.AssociationID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DisassociateRouteTable),
		Output:   cmdlet.Nothing[ec2.DisassociateRouteTableOutput],
		PassThru: func(p associationIDParams) any { return ptr.Deref(p.AssociationID, "") },
	}
}

type createInternetGatewayParams struct {
	Tags   []types.Tag
	DryRun *bool
}

func createInternetGateway() *operation[createInternetGatewayParams, ec2.CreateInternetGatewayInput, ec2.CreateInternetGatewayOutput] {
	return &operation[createInternetGatewayParams, ec2.CreateInternetGatewayInput, ec2.CreateInternetGatewayOutput]{
		Name:   "create-internet-gateway",
		Group:  GroupRouting,
		Short:  "Create an internet gateway",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createInternetGatewayParams) []*cmdlet.Param {
			return []*cmdlet.Param{tagParam(&p.Tags), dryRunParam(&p.DryRun)}
		},
		Request: func(p createInternetGatewayParams) *ec2.CreateInternetGatewayInput {
			return &ec2.CreateInternetGatewayInput{
				TagSpecifications: tags.Specifications(types.ResourceTypeInternetGateway, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call:   call(platform.API.CreateInternetGateway),
		Output: func(out *ec2.CreateInternetGatewayOutput) any { return out.InternetGateway },
	}
}

type internetGatewayIDParams struct {
	InternetGatewayID *string
	DryRun            *bool
}

func deleteInternetGateway() *operation[internetGatewayIDParams, ec2.DeleteInternetGatewayInput, ec2.DeleteInternetGatewayOutput] {
	return &operation[internetGatewayIDParams, ec2.DeleteInternetGatewayInput, ec2.DeleteInternetGatewayOutput]{
		Name:   "delete-internet-gateway",
		Group:  GroupRouting,
		Short:  "Delete an internet gateway",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *internetGatewayIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.InternetGatewayID, "internet-gateway-id", "Internet gateway ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p internetGatewayIDParams) string { return ptr.Deref(p.InternetGatewayID, "") },
		Request: func(p internetGatewayIDParams) *ec2.DeleteInternetGatewayInput {
			return &ec2.DeleteInternetGatewayInput{InternetGatewayId: p.InternetGatewayID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteInternetGateway),
		Output:   cmdlet.Nothing[ec2.DeleteInternetGatewayOutput],
		PassThru: func(p internetGatewayIDParams) any { return ptr.Deref(p.InternetGatewayID, "") },
	}
}

// internetGatewayAttachment identifies a gateway and its VPC.
type internetGatewayAttachment struct {
	InternetGatewayID *string
	VpcID             *string
	DryRun            *bool
}

func (a *internetGatewayAttachment) params() []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.String(&a.InternetGatewayID, "internet-gateway-id", "Internet gateway ID").At(1).Required(),
		cmdlet.String(&a.VpcID, "vpc-id", "VPC ID").At(2).Required(),
		dryRunParam(&a.DryRun),
	}
}

func (a internetGatewayAttachment) target() string { return ptr.Deref(a.InternetGatewayID, "") }

func (a internetGatewayAttachment) passThru() any { return a.target() }

func attachInternetGateway() *operation[internetGatewayAttachment, ec2.AttachInternetGatewayInput, ec2.AttachInternetGatewayOutput] {
	return &operation[internetGatewayAttachment, ec2.AttachInternetGatewayInput, ec2.AttachInternetGatewayOutput]{
		Name:   "attach-internet-gateway",
		Group:  GroupRouting,
		Short:  "Attach an internet gateway to a VPC",
		Impact: cmdlet.ImpactMedium,
		Params: (*internetGatewayAttachment).params,
		Target: internetGatewayAttachment.target,
		Request: func(p internetGatewayAttachment) *ec2.AttachInternetGatewayInput {
			return &ec2.AttachInternetGatewayInput{InternetGatewayId: p.InternetGatewayID, VpcId: p.VpcID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.AttachInternetGateway),
		Output:   cmdlet.Nothing[ec2.AttachInternetGatewayOutput],
		PassThru: internetGatewayAttachment.passThru,
	}
}

func detachInternetGateway() *operation[internetGatewayAttachment, ec2.DetachInternetGatewayInput, ec2.DetachInternetGatewayOutput] {
	return &operation[internetGatewayAttachment, ec2.DetachInternetGatewayInput, ec2.DetachInternetGatewayOutput]{
		Name:   "detach-internet-gateway",
		Group:  GroupRouting,
		Short:  "Detach an internet gateway from a VPC",
		Impact: cmdlet.ImpactMedium,
		Params: (*internetGatewayAttachment).params,
		Target: internetGatewayAttachment.target,
		Request: func(p internetGatewayAttachment) *ec2.DetachInternetGatewayInput {
			return &ec2.DetachInternetGatewayInput{InternetGatewayId: p.InternetGatewayID, VpcId: p.VpcID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DetachInternetGateway),
		Output:   cmdlet.Nothing[ec2.DetachInternetGatewayOutput],
		PassThru: internetGatewayAttachment.passThru,
	}
}
