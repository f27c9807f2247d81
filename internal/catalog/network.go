package catalog

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
	"github.com/imamik/ec2ctl/internal/util/ptr"
	"github.com/imamik/ec2ctl/internal/util/tags"
)

func networkOperations() []Command {
	return []Command{
		describeVpcs(),
		createVpc(),
		deleteVpc(),
		describeSubnets(),
		createSubnet(),
		deleteSubnet(),
		createSecurityGroup(),
		deleteSecurityGroup(),
		authorizeSecurityGroupIngress(),
		revokeSecurityGroupIngress(),
		describeAddresses(),
		allocateAddress(),
		associateAddress(),
		releaseAddress(),
	}
}

type describeVpcsParams struct {
	VpcIDs  []string
	Filters []types.Filter
	DryRun  *bool
}

func describeVpcs() *operation[describeVpcsParams, ec2.DescribeVpcsInput, ec2.DescribeVpcsOutput] {
	return &operation[describeVpcsParams, ec2.DescribeVpcsInput, ec2.DescribeVpcsOutput]{
		Name:  "describe-vpcs",
		Group: GroupNetwork,
		Short: "Describe VPCs",
		Params: func(p *describeVpcsParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.VpcIDs, "vpc-ids", "VPC IDs").At(1).Alias("vpc-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeVpcsParams) *ec2.DescribeVpcsInput {
			return &ec2.DescribeVpcsInput{VpcIds: p.VpcIDs, Filters: p.Filters, DryRun: p.DryRun}
		},
		Call:   call(platform.API.DescribeVpcs),
		Output: func(out *ec2.DescribeVpcsOutput) any { return out.Vpcs },
		Pages: &cmdlet.Pages[ec2.DescribeVpcsInput, ec2.DescribeVpcsOutput]{
			Token:       func(out *ec2.DescribeVpcsOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeVpcsInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeVpcsInput, size *int32) { in.MaxResults = size },
			Count:       func(out *ec2.DescribeVpcsOutput) int { return len(out.Vpcs) },
		},
	}
}

type createVpcParams struct {
	CidrBlock  *string
	AmazonIPv6 *bool
	Tenancy    types.Tenancy
	Tags       []types.Tag
	DryRun     *bool
}

func createVpc() *operation[createVpcParams, ec2.CreateVpcInput, ec2.CreateVpcOutput] {
	return &operation[createVpcParams, ec2.CreateVpcInput, ec2.CreateVpcOutput]{
		Name:   "create-vpc",
		Group:  GroupNetwork,
		Short:  "Create a VPC",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createVpcParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.CidrBlock, "cidr-block", "IPv4 CIDR block, for example 10.0.0.0/16").At(1).Required(),
				cmdlet.Bool(&p.AmazonIPv6, "amazon-provided-ipv6-cidr-block", "Request an Amazon-provided IPv6 block"),
				cmdlet.Enum(&p.Tenancy, types.Tenancy("").Values(), "instance-tenancy", "Default tenancy of instances"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createVpcParams) string { return ptr.Deref(p.CidrBlock, "") },
		Request: func(p createVpcParams) *ec2.CreateVpcInput {
			return &ec2.CreateVpcInput{
				CidrBlock:                   p.CidrBlock,
				AmazonProvidedIpv6CidrBlock: p.AmazonIPv6,
				InstanceTenancy:             p.Tenancy,
				TagSpecifications:           tags.Specifications(types.ResourceTypeVpc, p.Tags),
				DryRun:                      p.DryRun,
			}
		},
		Call:   call(platform.API.CreateVpc),
		Output: func(out *ec2.CreateVpcOutput) any { return out.Vpc },
	}
}

type vpcIDParams struct {
	VpcID  *string
	DryRun *bool
}

func deleteVpc() *operation[vpcIDParams, ec2.DeleteVpcInput, ec2.DeleteVpcOutput] {
	return &operation[vpcIDParams, ec2.DeleteVpcInput, ec2.DeleteVpcOutput]{
		Name:   "delete-vpc",
		Group:  GroupNetwork,
		Short:  "Delete a VPC",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *vpcIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VpcID, "vpc-id", "VPC ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p vpcIDParams) string { return ptr.Deref(p.VpcID, "") },
		Request: func(p vpcIDParams) *ec2.DeleteVpcInput {
			return &ec2.DeleteVpcInput{VpcId: p.VpcID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteVpc),
		Output:   cmdlet.Nothing[ec2.DeleteVpcOutput],
		PassThru: func(p vpcIDParams) any { return ptr.Deref(p.VpcID, "") },
	}
}

type describeSubnetsParams struct {
	SubnetIDs []string
	Filters   []types.Filter
	DryRun    *bool
}

func describeSubnets() *operation[describeSubnetsParams, ec2.DescribeSubnetsInput, ec2.DescribeSubnetsOutput] {
	return &operation[describeSubnetsParams, ec2.DescribeSubnetsInput, ec2.DescribeSubnetsOutput]{
		Name:  "describe-subnets",
		Group: GroupNetwork,
		Short: "Describe subnets",
		Params: func(p *describeSubnetsParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.SubnetIDs, "subnet-ids", "Subnet IDs").At(1).Alias("subnet-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeSubnetsParams) *ec2.DescribeSubnetsInput {
			return &ec2.DescribeSubnetsInput{SubnetIds: p.SubnetIDs, Filters: p.Filters, DryRun: p.DryRun}
		},
		Call:   call(platform.API.DescribeSubnets),
		Output: func(out *ec2.DescribeSubnetsOutput) any { return out.Subnets },
		Pages: &cmdlet.Pages[ec2.DescribeSubnetsInput, ec2.DescribeSubnetsOutput]{
			Token:       func(out *ec2.DescribeSubnetsOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeSubnetsInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeSubnetsInput, size *int32) { in.MaxResults = size },
			Count:       func(out *ec2.DescribeSubnetsOutput) int { return len(out.Subnets) },
		},
	}
}

type createSubnetParams struct {
	VpcID              *string
	CidrBlock          *string
	Ipv6CidrBlock      *string
	AvailabilityZone   *string
	AvailabilityZoneID *string
	Tags               []types.Tag
	DryRun             *bool
}

func createSubnet() *operation[createSubnetParams, ec2.CreateSubnetInput, ec2.CreateSubnetOutput] {
	return &operation[createSubnetParams, ec2.CreateSubnetInput, ec2.CreateSubnetOutput]{
		Name:   "create-subnet",
		Group:  GroupNetwork,
		Short:  "Create a subnet in a VPC",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createSubnetParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VpcID, "vpc-id", "VPC ID").At(1).Required(),
				cmdlet.String(&p.CidrBlock, "cidr-block", "IPv4 CIDR block").At(2),
				cmdlet.String(&p.Ipv6CidrBlock, "ipv6-cidr-block", "IPv6 CIDR block"),
				cmdlet.String(&p.AvailabilityZone, "availability-zone", "Availability zone"),
				cmdlet.String(&p.AvailabilityZoneID, "availability-zone-id", "Availability zone ID"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createSubnetParams) string { return ptr.Deref(p.VpcID, "") },
		Request: func(p createSubnetParams) *ec2.CreateSubnetInput {
			return &ec2.CreateSubnetInput{
				VpcId:              p.VpcID,
				CidrBlock:          p.CidrBlock,
				Ipv6CidrBlock:      p.Ipv6CidrBlock,
				AvailabilityZone:   p.AvailabilityZone,
				AvailabilityZoneId: p.AvailabilityZoneID,
				TagSpecifications:  tags.Specifications(types.ResourceTypeSubnet, p.Tags),
				DryRun:             p.DryRun,
			}
		},
		Call:   call(platform.API.CreateSubnet),
		Output: func(out *ec2.CreateSubnetOutput) any { return out.Subnet },
	}
}

type subnetIDParams struct {
	SubnetID *string
	DryRun   *bool
}

func deleteSubnet() *operation[subnetIDParams, ec2.DeleteSubnetInput, ec2.DeleteSubnetOutput] {
	return &operation[subnetIDParams, ec2.DeleteSubnetInput, ec2.DeleteSubnetOutput]{
		Name:   "delete-subnet",
		Group:  GroupNetwork,
		Short:  "Delete a subnet",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *subnetIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.SubnetID, "subnet-id", "Subnet ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p subnetIDParams) string { return ptr.Deref(p.SubnetID, "") },
		Request: func(p subnetIDParams) *ec2.DeleteSubnetInput {
			return &ec2.DeleteSubnetInput{SubnetId: p.SubnetID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteSubnet),
		Output:   cmdlet.Nothing[ec2.DeleteSubnetOutput],
		PassThru: func(p subnetIDParams) any { return ptr.Deref(p.SubnetID, "") },
	}
}

type createSecurityGroupParams struct {
	GroupName   *string
	Description *string
	VpcID       *string
	Tags        []types.Tag
	DryRun      *bool
}

func createSecurityGroup() *operation[createSecurityGroupParams, ec2.CreateSecurityGroupInput, ec2.CreateSecurityGroupOutput] {
	return &operation[createSecurityGroupParams, ec2.CreateSecurityGroupInput, ec2.CreateSecurityGroupOutput]{
		Name:   "create-security-group",
		Group:  GroupNetwork,
		Short:  "Create a security group",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createSecurityGroupParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.GroupName, "group-name", "Group name").At(1).Required(),
				cmdlet.String(&p.Description, "description", "Group description").Required().Alias("group-description"),
				cmdlet.String(&p.VpcID, "vpc-id", "VPC to create the group in"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createSecurityGroupParams) string { return ptr.Deref(p.GroupName, "") },
		Request: func(p createSecurityGroupParams) *ec2.CreateSecurityGroupInput {
			return &ec2.CreateSecurityGroupInput{
				GroupName:         p.GroupName,
				Description:       p.Description,
				VpcId:             p.VpcID,
				TagSpecifications: tags.Specifications(types.ResourceTypeSecurityGroup, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call:   call(platform.API.CreateSecurityGroup),
		Output: func(out *ec2.CreateSecurityGroupOutput) any { return ptr.Deref(out.GroupId, "") },
	}
}

// securityGroupRef selects a group by ID or, in a default VPC, by name.
type securityGroupRef struct {
	GroupID   *string
	GroupName *string
}

func (r *securityGroupRef) params() []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.String(&r.GroupID, "group-id", "Security group ID").At(1),
		cmdlet.String(&r.GroupName, "group-name", "Security group name (default VPC only)"),
	}
}

func (r securityGroupRef) validate() error {
	if !cmdlet.AnySet(r.GroupID, r.GroupName) {
		return errors.New("one of --group-id or --group-name is required")
	}
	return nil
}

func (r securityGroupRef) String() string {
	return ptr.Deref(r.GroupID, ptr.Deref(r.GroupName, ""))
}

type deleteSecurityGroupParams struct {
	securityGroupRef
	DryRun *bool
}

func deleteSecurityGroup() *operation[deleteSecurityGroupParams, ec2.DeleteSecurityGroupInput, ec2.DeleteSecurityGroupOutput] {
	return &operation[deleteSecurityGroupParams, ec2.DeleteSecurityGroupInput, ec2.DeleteSecurityGroupOutput]{
		Name:   "delete-security-group",
		Group:  GroupNetwork,
		Short:  "Delete a security group",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *deleteSecurityGroupParams) []*cmdlet.Param {
			return append(p.securityGroupRef.params(), dryRunParam(&p.DryRun))
		},
		Target: func(p deleteSecurityGroupParams) string { return p.securityGroupRef.String() },
		Prepare: func(p deleteSecurityGroupParams) (deleteSecurityGroupParams, error) {
			return p, p.validate()
		},
		Request: func(p deleteSecurityGroupParams) *ec2.DeleteSecurityGroupInput {
			return &ec2.DeleteSecurityGroupInput{GroupId: p.GroupID, GroupName: p.GroupName, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteSecurityGroup),
		Output:   cmdlet.Nothing[ec2.DeleteSecurityGroupOutput],
		PassThru: func(p deleteSecurityGroupParams) any { return p.securityGroupRef.String() },
	}
}

// ingressRule is a single permission given by flags. It becomes one
// IpPermission when any of its fields is present.
type ingressRule struct {
	Protocol    *string
	FromPort    *int32
	ToPort      *int32
	CIDR        *string
	IPv6CIDR    *string
	SourceGroup *string
	Description *string
}

func (r *ingressRule) params() []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.String(&r.Protocol, "protocol", "tcp, udp, icmp, icmpv6, a protocol number or -1 for all").Alias("ip-protocol"),
		cmdlet.Int32(&r.FromPort, "from-port", "Start of the port range, or ICMP type"),
		cmdlet.Int32(&r.ToPort, "to-port", "End of the port range, or ICMP code"),
		cmdlet.String(&r.CIDR, "cidr", "IPv4 source range").Alias("cidr-ip"),
		cmdlet.String(&r.IPv6CIDR, "ipv6-cidr", "IPv6 source range"),
		cmdlet.String(&r.SourceGroup, "source-group", "Source security group ID"),
		cmdlet.String(&r.Description, "rule-description", "Description of the rule"),
	}
}

func (r ingressRule) present() bool {
	return cmdlet.AnySet(r.Protocol, r.FromPort, r.ToPort, r.CIDR, r.IPv6CIDR, r.SourceGroup, r.Description)
}

func (r ingressRule) validate() error {
	if !r.present() {
		return nil
	}
	if r.Protocol == nil {
		return errors.New("--protocol is required when a rule is given")
	}
	for _, port := range []*int32{r.FromPort, r.ToPort} {
		if port != nil && (*port < -1 || *port > 65535) {
			return fmt.Errorf("port %d out of range", *port)
		}
	}
	if r.FromPort != nil && r.ToPort != nil && *r.FromPort > *r.ToPort && *r.ToPort != -1 {
		return fmt.Errorf("--from-port %d is greater than --to-port %d", *r.FromPort, *r.ToPort)
	}
	return nil
}

func (r ingressRule) permissions() []types.IpPermission {
	if !r.present() {
		return nil
	}
	perm := types.IpPermission{IpProtocol: r.Protocol, FromPort: r.FromPort, ToPort: r.ToPort}
	if r.CIDR != nil {
		perm.IpRanges = []types.IpRange{{CidrIp: r.CIDR, Description: r.Description}}
	}
	if r.IPv6CIDR != nil {
		perm.Ipv6Ranges = []types.Ipv6Range{{CidrIpv6: r.IPv6CIDR, Description: r.Description}}
	}
	if r.SourceGroup != nil {
		perm.UserIdGroupPairs = []types.UserIdGroupPair{{GroupId: r.SourceGroup, Description: r.Description}}
	}
	return []types.IpPermission{perm}
}

type authorizeIngressParams struct {
	securityGroupRef
	ingressRule
	Tags   []types.Tag
	DryRun *bool
}

func authorizeSecurityGroupIngress() *operation[authorizeIngressParams, ec2.AuthorizeSecurityGroupIngressInput, ec2.AuthorizeSecurityGroupIngressOutput] {
	return &operation[authorizeIngressParams, ec2.AuthorizeSecurityGroupIngressInput, ec2.AuthorizeSecurityGroupIngressOutput]{
		Name:    "authorize-security-group-ingress",
		Group:   GroupNetwork,
		Short:   "Add an inbound rule to a security group",
		Impact:  cmdlet.ImpactMedium,
		Example: `  ec2ctl authorize-security-group-ingress sg-123 --protocol tcp --from-port 22 --to-port 22 --cidr 203.0.113.0/24`,
		Params: func(p *authorizeIngressParams) []*cmdlet.Param {
			params := append(p.securityGroupRef.params(), p.ingressRule.params()...)
			return append(params, tagParam(&p.Tags), dryRunParam(&p.DryRun))
		},
		Target: func(p authorizeIngressParams) string { return p.securityGroupRef.String() },
		Prepare: func(p authorizeIngressParams) (authorizeIngressParams, error) {
			if err := p.securityGroupRef.validate(); err != nil {
				return p, err
			}
			if !p.ingressRule.present() {
				return p, errors.New("no rule given: pass --protocol with ports and a source")
			}
			return p, p.ingressRule.validate()
		},
		Request: func(p authorizeIngressParams) *ec2.AuthorizeSecurityGroupIngressInput {
			return &ec2.AuthorizeSecurityGroupIngressInput{
				GroupId:           p.GroupID,
				GroupName:         p.GroupName,
				IpPermissions:     p.ingressRule.permissions(),
				TagSpecifications: tags.Specifications(types.ResourceTypeSecurityGroupRule, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call:   call(platform.API.AuthorizeSecurityGroupIngress),
		Output: func(out *ec2.AuthorizeSecurityGroupIngressOutput) any { return out.SecurityGroupRules },
	}
}

type revokeIngressParams struct {
	securityGroupRef
	ingressRule
	RuleIDs []string
	DryRun  *bool
}

func revokeSecurityGroupIngress() *operation[revokeIngressParams, ec2.RevokeSecurityGroupIngressInput, ec2.RevokeSecurityGroupIngressOutput] {
	return &operation[revokeIngressParams, ec2.RevokeSecurityGroupIngressInput, ec2.RevokeSecurityGroupIngressOutput]{
		Name:   "revoke-security-group-ingress",
		Group:  GroupNetwork,
		Short:  "Remove inbound rules from a security group",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *revokeIngressParams) []*cmdlet.Param {
			params := append(p.securityGroupRef.params(), p.ingressRule.params()...)
			return append(params,
				cmdlet.Strings(&p.RuleIDs, "security-group-rule-ids", "Rule IDs to remove").Alias("security-group-rule-id"),
				dryRunParam(&p.DryRun),
			)
		},
		Target: func(p revokeIngressParams) string { return p.securityGroupRef.String() },
		Prepare: func(p revokeIngressParams) (revokeIngressParams, error) {
			if err := p.securityGroupRef.validate(); err != nil {
				return p, err
			}
			if !p.ingressRule.present() && p.RuleIDs == nil {
				return p, errors.New("pass a rule with --protocol or --security-group-rule-ids")
			}
			return p, p.ingressRule.validate()
		},
		Request: func(p revokeIngressParams) *ec2.RevokeSecurityGroupIngressInput {
			return &ec2.RevokeSecurityGroupIngressInput{
				GroupId:              p.GroupID,
				GroupName:            p.GroupName,
				IpPermissions:        p.ingressRule.permissions(),
				SecurityGroupRuleIds: p.RuleIDs,
				DryRun:               p.DryRun,
			}
		},
		Call: call(platform.API.RevokeSecurityGroupIngress),
	}
}

type describeAddressesParams struct {
	PublicIPs     []string
	AllocationIDs []string
	Filters       []types.Filter
	DryRun        *bool
}

func describeAddresses() *operation[describeAddressesParams, ec2.DescribeAddressesInput, ec2.DescribeAddressesOutput] {
	return &operation[describeAddressesParams, ec2.DescribeAddressesInput, ec2.DescribeAddressesOutput]{
		Name:  "describe-addresses",
		Group: GroupNetwork,
		Short: "Describe Elastic IP addresses",
		Params: func(p *describeAddressesParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.PublicIPs, "public-ips", "Public IP addresses").At(1).Alias("public-ip"),
				cmdlet.Strings(&p.AllocationIDs, "allocation-ids", "Allocation IDs").Alias("allocation-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeAddressesParams) *ec2.DescribeAddressesInput {
			return &ec2.DescribeAddressesInput{
				PublicIps:     p.PublicIPs,
				AllocationIds: p.AllocationIDs,
				Filters:       p.Filters,
				DryRun:        p.DryRun,
			}
		},
		Call:   call(platform.API.DescribeAddresses),
		Output: func(out *ec2.DescribeAddressesOutput) any { return out.Addresses },
	}
}

type allocateAddressParams struct {
	Domain             types.DomainType
	Address            *string
	PublicIpv4Pool     *string
	NetworkBorderGroup *string
	Tags               []types.Tag
	DryRun             *bool
}

func allocateAddress() *operation[allocateAddressParams, ec2.AllocateAddressInput, ec2.AllocateAddressOutput] {
	return &operation[allocateAddressParams, ec2.AllocateAddressInput, ec2.AllocateAddressOutput]{
		Name:   "allocate-address",
		Group:  GroupNetwork,
		Short:  "Allocate an Elastic IP address",
		Impact: cmdlet.ImpactLow,
		Params: func(p *allocateAddressParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Enum(&p.Domain, types.DomainType("").Values(), "domain", "Address domain"),
				cmdlet.String(&p.Address, "address", "Specific address from an address pool"),
				cmdlet.String(&p.PublicIpv4Pool, "public-ipv4-pool", "Address pool to allocate from"),
				cmdlet.String(&p.NetworkBorderGroup, "network-border-group", "Network border group"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p allocateAddressParams) *ec2.AllocateAddressInput {
			return &ec2.AllocateAddressInput{
				Domain:             p.Domain,
				Address:            p.Address,
				PublicIpv4Pool:     p.PublicIpv4Pool,
				NetworkBorderGroup: p.NetworkBorderGroup,
				TagSpecifications:  tags.Specifications(types.ResourceTypeElasticIp, p.Tags),
				DryRun:             p.DryRun,
			}
		},
		Call: call(platform.API.AllocateAddress),
	}
}

type associateAddressParams struct {
	AllocationID       *string
	InstanceID         *string
	NetworkInterfaceID *string
	PrivateIP          *string
	PublicIP           *string
	AllowReassociation *bool
	DryRun             *bool
}

func associateAddress() *operation[associateAddressParams, ec2.AssociateAddressInput, ec2.AssociateAddressOutput] {
	return &operation[associateAddressParams, ec2.AssociateAddressInput, ec2.AssociateAddressOutput]{
		Name:   "associate-address",
		Group:  GroupNetwork,
		Short:  "Associate an Elastic IP address with an instance or network interface",
		Impact: cmdlet.ImpactMedium,
		Params: func(p *associateAddressParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.AllocationID, "allocation-id", "Allocation ID").At(1),
				cmdlet.String(&p.InstanceID, "instance-id", "Instance ID").At(2),
				cmdlet.String(&p.NetworkInterfaceID, "network-interface-id", "Network interface ID"),
				cmdlet.String(&p.PrivateIP, "private-ip-address", "Private address to associate with"),
				cmdlet.String(&p.PublicIP, "public-ip", "Public address (EC2-Classic style)"),
				cmdlet.Bool(&p.AllowReassociation, "allow-reassociation", "Move the address if it is already associated"),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p associateAddressParams) string {
			return ptr.Deref(p.AllocationID, ptr.Deref(p.PublicIP, ""))
		},
		Prepare: func(p associateAddressParams) (associateAddressParams, error) {
			if !cmdlet.AnySet(p.AllocationID, p.PublicIP) {
				return p, errors.New("one of --allocation-id or --public-ip is required")
			}
			return p, nil
		},
		Request: func(p associateAddressParams) *ec2.AssociateAddressInput {
			return &ec2.AssociateAddressInput{
				AllocationId:       p.AllocationID,
				InstanceId:         p.InstanceID,
				NetworkInterfaceId: p.NetworkInterfaceID,
				PrivateIpAddress:   p.PrivateIP,
				PublicIp:           p.PublicIP,
				AllowReassociation: p.AllowReassociation,
				DryRun:             p.DryRun,
			}
		},
		Call:   call(platform.API.AssociateAddress),
		Output: func(out *ec2.AssociateAddressOutput) any { return ptr.Deref(out.AssociationId, "") },
	}
}

type releaseAddressParams struct {
	AllocationID       *string
	PublicIP           *string
	NetworkBorderGroup *string
	DryRun             *bool
}

func releaseAddress() *operation[releaseAddressParams, ec2.ReleaseAddressInput, ec2.ReleaseAddressOutput] {
	return &operation[releaseAddressParams, ec2.ReleaseAddressInput, ec2.ReleaseAddressOutput]{
		Name:   "release-address",
		Group:  GroupNetwork,
		Short:  "Release an Elastic IP address",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *releaseAddressParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.AllocationID, "allocation-id", "Allocation ID").At(1),
				cmdlet.String(&p.PublicIP, "public-ip", "Public address"),
				cmdlet.String(&p.NetworkBorderGroup, "network-border-group", "Network border group"),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p releaseAddressParams) string {
			return ptr.Deref(p.AllocationID, ptr.Deref(p.PublicIP, ""))
		},
		Prepare: func(p releaseAddressParams) (releaseAddressParams, error) {
			if !cmdlet.AnySet(p.AllocationID, p.PublicIP) {
				return p, errors.New("one of --allocation-id or --public-ip is required")
			}
			return p, nil
		},
		Request: func(p releaseAddressParams) *ec2.ReleaseAddressInput {
			return &ec2.ReleaseAddressInput{
				AllocationId:       p.AllocationID,
				PublicIp:           p.PublicIP,
				NetworkBorderGroup: p.NetworkBorderGroup,
				DryRun:             p.DryRun,
			}
		},
		Call:   call(platform.API.ReleaseAddress),
		Output: cmdlet.Nothing[ec2.ReleaseAddressOutput],
		PassThru: func(p releaseAddressParams) any {
			return ptr.Deref(p.AllocationID, ptr.Deref(p.PublicIP, ""))
		},
	}
}
