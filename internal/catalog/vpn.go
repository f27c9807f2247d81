package catalog

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
	"github.com/imamik/ec2ctl/internal/util/ptr"
	"github.com/imamik/ec2ctl/internal/util/tags"
)

func vpnOperations() []Command {
	return []Command{
		describeCustomerGateways(),
		createCustomerGateway(),
		deleteCustomerGateway(),
		describeVpnGateways(),
		createVpnGateway(),
		deleteVpnGateway(),
		attachVpnGateway(),
		detachVpnGateway(),
		describeVpnConnections(),
		createVpnConnection(),
		deleteVpnConnection(),
		createVpnConnectionRoute(),
		deleteVpnConnectionRoute(),
	}
}

type describeCustomerGatewaysParams struct {
	CustomerGatewayIDs []string
	Filters            []types.Filter
	DryRun             *bool
}

func describeCustomerGateways() *operation[describeCustomerGatewaysParams, ec2.DescribeCustomerGatewaysInput, ec2.DescribeCustomerGatewaysOutput] {
	return &operation[describeCustomerGatewaysParams, ec2.DescribeCustomerGatewaysInput, ec2.DescribeCustomerGatewaysOutput]{
		Name:  "describe-customer-gateways",
		Group: GroupVPN,
		Short: "Describe customer gateways",
		Params: func(p *describeCustomerGatewaysParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.CustomerGatewayIDs, "customer-gateway-ids", "Customer gateway IDs").At(1).Alias("customer-gateway-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeCustomerGatewaysParams) *ec2.DescribeCustomerGatewaysInput {
			return &ec2.DescribeCustomerGatewaysInput{
				CustomerGatewayIds: p.CustomerGatewayIDs,
				Filters:            p.Filters,
				DryRun:             p.DryRun,
			}
		},
		Call:   call(platform.API.DescribeCustomerGateways),
		Output: func(out *ec2.DescribeCustomerGatewaysOutput) any { return out.CustomerGateways },
	}
}

type createCustomerGatewayParams struct {
	Type           types.GatewayType
	IPAddress      *string
	BgpAsn         *int32
	CertificateArn *string
	DeviceName     *string
	Tags           []types.Tag
	DryRun         *bool
}

func createCustomerGateway() *operation[createCustomerGatewayParams, ec2.CreateCustomerGatewayInput, ec2.CreateCustomerGatewayOutput] {
	return &operation[createCustomerGatewayParams, ec2.CreateCustomerGatewayInput, ec2.CreateCustomerGatewayOutput]{
		Name:    "create-customer-gateway",
		Group:   GroupVPN,
		Short:   "Register a customer gateway device",
		Impact:  cmdlet.ImpactLow,
		Example: `  ec2ctl create-customer-gateway 198.51.100.7 --bgp-asn 65010`,
		Params: func(p *createCustomerGatewayParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.IPAddress, "ip-address", "Public IP address of the device").At(1).Required().Alias("public-ip"),
				cmdlet.Enum(&p.Type, types.GatewayType("").Values(), "type", "VPN connection type").Default("ipsec.1"),
				cmdlet.Int32(&p.BgpAsn, "bgp-asn", "BGP autonomous system number").Default("65000"),
				cmdlet.String(&p.CertificateArn, "certificate-arn", "Private certificate ARN"),
				cmdlet.String(&p.DeviceName, "device-name", "Device name"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createCustomerGatewayParams) string { return ptr.Deref(p.IPAddress, "") },
		Request: func(p createCustomerGatewayParams) *ec2.CreateCustomerGatewayInput {
			return &ec2.CreateCustomerGatewayInput{
				Type:              p.Type,
				IpAddress:         p.IPAddress,
				BgpAsn:            p.BgpAsn,
				CertificateArn:    p.CertificateArn,
				DeviceName:        p.DeviceName,
				TagSpecifications: tags.Specifications(types.ResourceTypeCustomerGateway, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call:   call(platform.API.CreateCustomerGateway),
		Output: func(out *ec2.CreateCustomerGatewayOutput) any { return out.CustomerGateway },
	}
}

type customerGatewayIDParams struct {
	CustomerGatewayID *string
	DryRun            *bool
}

func deleteCustomerGateway() *operation[customerGatewayIDParams, ec2.DeleteCustomerGatewayInput, ec2.DeleteCustomerGatewayOutput] {
	return &operation[customerGatewayIDParams, ec2.DeleteCustomerGatewayInput, ec2.DeleteCustomerGatewayOutput]{
		Name:   "delete-customer-gateway",
		Group:  GroupVPN,
		Short:  "Delete a customer gateway",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *customerGatewayIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.CustomerGatewayID, "customer-gateway-id", "Customer gateway ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p customerGatewayIDParams) string { return ptr.Deref(p.CustomerGatewayID, "") },
		Request: func(p customerGatewayIDParams) *ec2.DeleteCustomerGatewayInput {
			return &ec2.DeleteCustomerGatewayInput{CustomerGatewayId: p.CustomerGatewayID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteCustomerGateway),
		Output:   cmdlet.Nothing[ec2.DeleteCustomerGatewayOutput],
		PassThru: func(p customerGatewayIDParams) any { return ptr.Deref(p.CustomerGatewayID, "") },
	}
}

type describeVpnGatewaysParams struct {
	VpnGatewayIDs []string
	Filters       []types.Filter
	DryRun        *bool
}

func describeVpnGateways() *operation[describeVpnGatewaysParams, ec2.DescribeVpnGatewaysInput, ec2.DescribeVpnGatewaysOutput] {
	return &operation[describeVpnGatewaysParams, ec2.DescribeVpnGatewaysInput, ec2.DescribeVpnGatewaysOutput]{
		Name:  "describe-vpn-gateways",
		Group: GroupVPN,
		Short: "Describe virtual private gateways",
		Params: func(p *describeVpnGatewaysParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.VpnGatewayIDs, "vpn-gateway-ids", "VPN gateway IDs").At(1).Alias("vpn-gateway-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeVpnGatewaysParams) *ec2.DescribeVpnGatewaysInput {
			return &ec2.DescribeVpnGatewaysInput{VpnGatewayIds: p.VpnGatewayIDs, Filters: p.Filters, DryRun: p.DryRun}
		},
		Call:   call(platform.API.DescribeVpnGateways),
		Output: func(out *ec2.DescribeVpnGatewaysOutput) any { return out.VpnGateways },
	}
}

type createVpnGatewayParams struct {
	Type             types.GatewayType
	AmazonSideAsn    *int64
	AvailabilityZone *string
	Tags             []types.Tag
	DryRun           *bool
}

func createVpnGateway() *operation[createVpnGatewayParams, ec2.CreateVpnGatewayInput, ec2.CreateVpnGatewayOutput] {
	return &operation[createVpnGatewayParams, ec2.CreateVpnGatewayInput, ec2.CreateVpnGatewayOutput]{
		Name:   "create-vpn-gateway",
		Group:  GroupVPN,
		Short:  "Create a virtual private gateway",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createVpnGatewayParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Enum(&p.Type, types.GatewayType("").Values(), "type", "VPN connection type").Default("ipsec.1"),
				cmdlet.Int64(&p.AmazonSideAsn, "amazon-side-asn", "Private ASN for the Amazon side of a BGP session"),
				cmdlet.String(&p.AvailabilityZone, "availability-zone", "Availability zone"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p createVpnGatewayParams) *ec2.CreateVpnGatewayInput {
			return &ec2.CreateVpnGatewayInput{
				Type:              p.Type,
				AmazonSideAsn:     p.AmazonSideAsn,
				AvailabilityZone:  p.AvailabilityZone,
				TagSpecifications: tags.Specifications(types.ResourceTypeVpnGateway, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call:   call(platform.API.CreateVpnGateway),
		Output: func(out *ec2.CreateVpnGatewayOutput) any { return out.VpnGateway },
	}
}

type vpnGatewayIDParams struct {
	VpnGatewayID *string
	DryRun       *bool
}

func deleteVpnGateway() *operation[vpnGatewayIDParams, ec2.DeleteVpnGatewayInput, ec2.DeleteVpnGatewayOutput] {
	return &operation[vpnGatewayIDParams, ec2.DeleteVpnGatewayInput, ec2.DeleteVpnGatewayOutput]{
		Name:   "delete-vpn-gateway",
		Group:  GroupVPN,
		Short:  "Delete a virtual private gateway",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *vpnGatewayIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VpnGatewayID, "vpn-gateway-id", "VPN gateway ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p vpnGatewayIDParams) string { return ptr.Deref(p.VpnGatewayID, "") },
		Request: func(p vpnGatewayIDParams) *ec2.DeleteVpnGatewayInput {
			return &ec2.DeleteVpnGatewayInput{VpnGatewayId: p.VpnGatewayID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteVpnGateway),
		Output:   cmdlet.Nothing[ec2.DeleteVpnGatewayOutput],
		PassThru: func(p vpnGatewayIDParams) any { return ptr.Deref(p.VpnGatewayID, "") },
	}
}

// vpnGatewayAttachment identifies a gateway and the VPC it is attached to.
type vpnGatewayAttachment struct {
	VpnGatewayID *string
	VpcID        *string
	DryRun       *bool
}

func (a *vpnGatewayAttachment) params() []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.String(&a.VpnGatewayID, "vpn-gateway-id", "VPN gateway ID").At(1).Required(),
		cmdlet.String(&a.VpcID, "vpc-id", "VPC ID").At(2).Required(),
		dryRunParam(&a.DryRun),
	}
}

func (a vpnGatewayAttachment) target() string { return ptr.Deref(a.VpnGatewayID, "") }

func (a vpnGatewayAttachment) passThru() any { return a.target() }

func attachVpnGateway() *operation[vpnGatewayAttachment, ec2.AttachVpnGatewayInput, ec2.AttachVpnGatewayOutput] {
	return &operation[vpnGatewayAttachment, ec2.AttachVpnGatewayInput, ec2.AttachVpnGatewayOutput]{
		Name:   "attach-vpn-gateway",
		Group:  GroupVPN,
		Short:  "Attach a virtual private gateway to a VPC",
		Impact: cmdlet.ImpactMedium,
		Params: (*vpnGatewayAttachment).params,
		Target: vpnGatewayAttachment.target,
		Request: func(p vpnGatewayAttachment) *ec2.AttachVpnGatewayInput {
			return &ec2.AttachVpnGatewayInput{VpnGatewayId: p.VpnGatewayID, VpcId: p.VpcID, DryRun: p.DryRun}
		},
		Call:   call(platform.API.AttachVpnGateway),
		Output: func(out *ec2.AttachVpnGatewayOutput) any { return out.VpcAttachment },
	}
}

func detachVpnGateway() *operation[vpnGatewayAttachment, ec2.DetachVpnGatewayInput, ec2.DetachVpnGatewayOutput] {
	return &operation[vpnGatewayAttachment, ec2.DetachVpnGatewayInput, ec2.DetachVpnGatewayOutput]{
		Name:   "detach-vpn-gateway",
		Group:  GroupVPN,
		Short:  "Detach a virtual private gateway from a VPC",
		Impact: cmdlet.ImpactMedium,
		Params: (*vpnGatewayAttachment).params,
		Target: vpnGatewayAttachment.target,
		Request: func(p vpnGatewayAttachment) *ec2.DetachVpnGatewayInput {
			return &ec2.DetachVpnGatewayInput{VpnGatewayId: p.VpnGatewayID, VpcId: p.VpcID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DetachVpnGateway),
		Output:   cmdlet.Nothing[ec2.DetachVpnGatewayOutput],
		PassThru: vpnGatewayAttachment.passThru,
	}
}

type describeVpnConnectionsParams struct {
	VpnConnectionIDs []string
	Filters          []types.Filter
	DryRun           *bool
}

func describeVpnConnections() *operation[describeVpnConnectionsParams, ec2.DescribeVpnConnectionsInput, ec2.DescribeVpnConnectionsOutput] {
	return &operation[describeVpnConnectionsParams, ec2.DescribeVpnConnectionsInput, ec2.DescribeVpnConnectionsOutput]{
		Name:  "describe-vpn-connections",
		Group: GroupVPN,
		Short: "Describe site-to-site VPN connections",
		Params: func(p *describeVpnConnectionsParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.VpnConnectionIDs, "vpn-connection-ids", "VPN connection IDs").At(1).Alias("vpn-connection-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeVpnConnectionsParams) *ec2.DescribeVpnConnectionsInput {
			return &ec2.DescribeVpnConnectionsInput{
				VpnConnectionIds: p.VpnConnectionIDs,
				Filters:          p.Filters,
				DryRun:           p.DryRun,
			}
		},
		Call:   call(platform.API.DescribeVpnConnections),
		Output: func(out *ec2.DescribeVpnConnectionsOutput) any { return out.VpnConnections },
	}
}

type createVpnConnectionParams struct {
	CustomerGatewayID *string
	VpnGatewayID      *string
	TransitGatewayID  *string
	Type              *string
	Tags              []types.Tag
	DryRun            *bool

	// VpnConnectionOptionsSpecification members.
	StaticRoutesOnly      *bool
	EnableAcceleration    *bool
	TunnelInsideIPVersion types.TunnelInsideIpVersion
	LocalIPv4NetworkCIDR  *string
	RemoteIPv4NetworkCIDR *string
}

func createVpnConnection() *operation[createVpnConnectionParams, ec2.CreateVpnConnectionInput, ec2.CreateVpnConnectionOutput] {
	return &operation[createVpnConnectionParams, ec2.CreateVpnConnectionInput, ec2.CreateVpnConnectionOutput]{
		Name:    "create-vpn-connection",
		Group:   GroupVPN,
		Short:   "Create a site-to-site VPN connection",
		Impact:  cmdlet.ImpactLow,
		Example: `  ec2ctl create-vpn-connection cgw-1 --vpn-gateway-id vgw-1 --static-routes-only`,
		Params: func(p *createVpnConnectionParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.CustomerGatewayID, "customer-gateway-id", "Customer gateway ID").At(1).Required(),
				cmdlet.String(&p.VpnGatewayID, "vpn-gateway-id", "Virtual private gateway ID"),
				cmdlet.String(&p.TransitGatewayID, "transit-gateway-id", "Transit gateway ID"),
				cmdlet.String(&p.Type, "type", "VPN connection type").Default("ipsec.1"),
				cmdlet.Bool(&p.StaticRoutesOnly, "static-routes-only", "Use static routes instead of BGP"),
				cmdlet.Bool(&p.EnableAcceleration, "enable-acceleration", "Use accelerated tunnels"),
				cmdlet.Enum(&p.TunnelInsideIPVersion, types.TunnelInsideIpVersion("").Values(),
					"tunnel-inside-ip-version", "Traffic inside the tunnels"),
				cmdlet.String(&p.LocalIPv4NetworkCIDR, "local-ipv4-network-cidr", "IPv4 CIDR on the customer side"),
				cmdlet.String(&p.RemoteIPv4NetworkCIDR, "remote-ipv4-network-cidr", "IPv4 CIDR on the AWS side"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createVpnConnectionParams) string { return ptr.Deref(p.CustomerGatewayID, "") },
		Request: func(p createVpnConnectionParams) *ec2.CreateVpnConnectionInput {
			in := &ec2.CreateVpnConnectionInput{
				CustomerGatewayId: p.CustomerGatewayID,
				VpnGatewayId:      p.VpnGatewayID,
				TransitGatewayId:  p.TransitGatewayID,
				Type:              p.Type,
				TagSpecifications: tags.Specifications(types.ResourceTypeVpnConnection, p.Tags),
				DryRun:            p.DryRun,
			}
			if cmdlet.AnySet(p.StaticRoutesOnly, p.EnableAcceleration, p.TunnelInsideIPVersion,
				p.LocalIPv4NetworkCIDR, p.RemoteIPv4NetworkCIDR) {
				in.Options = &types.VpnConnectionOptionsSpecification{
					StaticRoutesOnly:      p.StaticRoutesOnly,
					EnableAcceleration:    p.EnableAcceleration,
					TunnelInsideIpVersion: p.TunnelInsideIPVersion,
					LocalIpv4NetworkCidr:  p.LocalIPv4NetworkCIDR,
					RemoteIpv4NetworkCidr: p.RemoteIPv4NetworkCIDR,
				}
			}
			return in
		},
		Call:   call(platform.API.CreateVpnConnection),
		Output: func(out *ec2.CreateVpnConnectionOutput) any { return out.VpnConnection },
	}
}

type vpnConnectionIDParams struct {
	VpnConnectionID *string
	DryRun          *bool
}

func deleteVpnConnection() *operation[vpnConnectionIDParams, ec2.DeleteVpnConnectionInput, ec2.DeleteVpnConnectionOutput] {
	return &operation[vpnConnectionIDParams, ec2.DeleteVpnConnectionInput, ec2.DeleteVpnConnectionOutput]{
		Name:   "delete-vpn-connection",
		Group:  GroupVPN,
		Short:  "Delete a site-to-site VPN connection",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *vpnConnectionIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VpnConnectionID, "vpn-connection-id", "VPN connection ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p vpnConnectionIDParams) string { return ptr.Deref(p.VpnConnectionID, "") },
		Request: func(p vpnConnectionIDParams) *ec2.DeleteVpnConnectionInput {
			return &ec2.DeleteVpnConnectionInput{VpnConnectionId: p.VpnConnectionID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteVpnConnection),
		Output:   cmdlet.Nothing[ec2.DeleteVpnConnectionOutput],
		PassThru: func(p vpnConnectionIDParams) any { return ptr.Deref(p.VpnConnectionID, "") },
	}
}

// vpnConnectionRoute is a static route of a VPN connection. The service has
// no dry-run mode for these calls.
type vpnConnectionRoute struct {
	VpnConnectionID      *string
	DestinationCidrBlock *string
}

func (r *vpnConnectionRoute) params() []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.String(&r.VpnConnectionID, "vpn-connection-id", "VPN connection ID").At(1).Required(),
		cmdlet.String(&r.DestinationCidrBlock, "destination-cidr-block", "CIDR of the customer network").At(2).Required(),
	}
}

func (r vpnConnectionRoute) target() string {
	return ptr.Deref(r.VpnConnectionID, "") + " " + ptr.Deref(r.DestinationCidrBlock, "")
}

func createVpnConnectionRoute() *operation[vpnConnectionRoute, ec2.CreateVpnConnectionRouteInput, ec2.CreateVpnConnectionRouteOutput] {
	return &operation[vpnConnectionRoute, ec2.CreateVpnConnectionRouteInput, ec2.CreateVpnConnectionRouteOutput]{
		Name:   "create-vpn-connection-route",
		Group:  GroupVPN,
		Short:  "Add a static route to a VPN connection",
		Impact: cmdlet.ImpactLow,
		Params: (*vpnConnectionRoute).params,
		Target: vpnConnectionRoute.target,
		Request: func(p vpnConnectionRoute) *ec2.CreateVpnConnectionRouteInput {
			return &ec2.CreateVpnConnectionRouteInput{
				VpnConnectionId:      p.VpnConnectionID,
				DestinationCidrBlock: p.DestinationCidrBlock,
			}
		},
		Call:     call(platform.API.CreateVpnConnectionRoute),
		Output:   cmdlet.Nothing[ec2.CreateVpnConnectionRouteOutput],
		PassThru: func(p vpnConnectionRoute) any { return ptr.Deref(p.VpnConnectionID, "") },
	}
}

func deleteVpnConnectionRoute() *operation[vpnConnectionRoute, ec2.DeleteVpnConnectionRouteInput, ec2.DeleteVpnConnectionRouteOutput] {
	return &operation[vpnConnectionRoute, ec2.DeleteVpnConnectionRouteInput, ec2.DeleteVpnConnectionRouteOutput]{
		Name:   "delete-vpn-connection-route",
		Group:  GroupVPN,
		Short:  "Remove a static route from a VPN connection",
		Impact: cmdlet.ImpactMedium,
		Params: (*vpnConnectionRoute).params,
		Target: vpnConnectionRoute.target,
		Request: func(p vpnConnectionRoute) *ec2.DeleteVpnConnectionRouteInput {
			return &ec2.DeleteVpnConnectionRouteInput{
				VpnConnectionId:      p.VpnConnectionID,
				DestinationCidrBlock: p.DestinationCidrBlock,
			}
		},
		Call:     call(platform.API.DeleteVpnConnectionRoute),
		Output:   cmdlet.Nothing[ec2.DeleteVpnConnectionRouteOutput],
		PassThru: func(p vpnConnectionRoute) any { return ptr.Deref(p.VpnConnectionID, "") },
	}
}
