package catalog

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/samber/lo"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
	"github.com/imamik/ec2ctl/internal/util/ptr"
	"github.com/imamik/ec2ctl/internal/util/tags"
)

func instanceOperations() []Command {
	return []Command{
		describeInstances(),
		describeInstanceStatus(),
		runInstances(),
		startInstances(),
		stopInstances(),
		rebootInstances(),
		terminateInstances(),
		monitorInstances(),
		unmonitorInstances(),
		getConsoleOutput(),
	}
}

// instanceIDsParams is shared by the operations acting on a list of instances.
type instanceIDsParams struct {
	InstanceIDs []string
	DryRun      *bool
}

func instanceIDs(p *instanceIDsParams) []*cmdlet.Param {
	return []*cmdlet.Param{
		cmdlet.Strings(&p.InstanceIDs, "instance-ids", "Instance IDs").At(1).Required().Alias("instance-id"),
		dryRunParam(&p.DryRun),
	}
}

func instanceTarget(p instanceIDsParams) string { return joinIDs(p.InstanceIDs) }

type describeInstancesParams struct {
	InstanceIDs []string
	Filters     []types.Filter
	DryRun      *bool
}

func describeInstances() *operation[describeInstancesParams, ec2.DescribeInstancesInput, ec2.DescribeInstancesOutput] {
	return &operation[describeInstancesParams, ec2.DescribeInstancesInput, ec2.DescribeInstancesOutput]{
		Name:  "describe-instances",
		Group: GroupInstance,
		Short: "Describe instances",
		Long: `Describe instances. Reservations are flattened, so each output item is
one instance.`,
		Example: `  ec2ctl describe-instances i-0abc,i-0def
  ec2ctl describe-instances --filter Name=instance-state-name,Values=running`,
		Params: func(p *describeInstancesParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.InstanceIDs, "instance-ids", "Instance IDs").At(1).Alias("instance-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeInstancesParams) *ec2.DescribeInstancesInput {
			return &ec2.DescribeInstancesInput{
				InstanceIds: p.InstanceIDs,
				Filters:     p.Filters,
				DryRun:      p.DryRun,
			}
		},
		Call:   call(platform.API.DescribeInstances),
		Output: func(out *ec2.DescribeInstancesOutput) any { return flattenReservations(out.Reservations) },
		Pages: &cmdlet.Pages[ec2.DescribeInstancesInput, ec2.DescribeInstancesOutput]{
			Token:       func(out *ec2.DescribeInstancesOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeInstancesInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeInstancesInput, size *int32) { in.MaxResults = size },
			Count: func(out *ec2.DescribeInstancesOutput) int {
				return len(flattenReservations(out.Reservations))
			},
		},
	}
}

func flattenReservations(reservations []types.Reservation) []types.Instance {
	return lo.FlatMap(reservations, func(r types.Reservation, _ int) []types.Instance { return r.Instances })
}

type describeInstanceStatusParams struct {
	InstanceIDs         []string
	Filters             []types.Filter
	IncludeAllInstances *bool
	DryRun              *bool
}

func describeInstanceStatus() *operation[describeInstanceStatusParams, ec2.DescribeInstanceStatusInput, ec2.DescribeInstanceStatusOutput] {
	return &operation[describeInstanceStatusParams, ec2.DescribeInstanceStatusInput, ec2.DescribeInstanceStatusOutput]{
		Name:  "describe-instance-status",
		Group: GroupInstance,
		Short: "Describe instance status checks and scheduled events",
		Params: func(p *describeInstanceStatusParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.InstanceIDs, "instance-ids", "Instance IDs").At(1).Alias("instance-id"),
				filterParam(&p.Filters),
				cmdlet.Bool(&p.IncludeAllInstances, "include-all-instances", "Include instances that are not running"),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeInstanceStatusParams) *ec2.DescribeInstanceStatusInput {
			return &ec2.DescribeInstanceStatusInput{
				InstanceIds:         p.InstanceIDs,
				Filters:             p.Filters,
				IncludeAllInstances: p.IncludeAllInstances,
				DryRun:              p.DryRun,
			}
		},
		Call:   call(platform.API.DescribeInstanceStatus),
		Output: func(out *ec2.DescribeInstanceStatusOutput) any { return out.InstanceStatuses },
		Pages: &cmdlet.Pages[ec2.DescribeInstanceStatusInput, ec2.DescribeInstanceStatusOutput]{
			Token:       func(out *ec2.DescribeInstanceStatusOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeInstanceStatusInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeInstanceStatusInput, size *int32) { in.MaxResults = size },
			Count:       func(out *ec2.DescribeInstanceStatusOutput) int { return len(out.InstanceStatuses) },
		},
	}
}

type runInstancesParams struct {
	ImageID          *string
	InstanceType     types.InstanceType
	MinCount         *int32
	MaxCount         *int32
	KeyName          *string
	SecurityGroupIDs []string
	SubnetID         *string
	PrivateIP        *string
	UserData         *string
	AvailabilityZone *string
	PlacementGroup   *string
	Tenancy          types.Tenancy
	Monitoring       *bool
	EbsOptimized     *bool
	ShutdownBehavior types.ShutdownBehavior
	Tags             []types.Tag
	ClientToken      *string
	DryRun           *bool
}

func runInstances() *operation[runInstancesParams, ec2.RunInstancesInput, ec2.RunInstancesOutput] {
	return &operation[runInstancesParams, ec2.RunInstancesInput, ec2.RunInstancesOutput]{
		Name:   "run-instances",
		Group:  GroupInstance,
		Short:  "Launch instances from an AMI",
		Impact: cmdlet.ImpactMedium,
		Long: `Launch instances from an AMI.

--user-data takes plain text or file://<path> and is base64 encoded before
it is sent.`,
		Example: `  ec2ctl run-instances ami-0abc --instance-type t3.micro --subnet-id subnet-1 --tag Name=web`,
		Params: func(p *runInstancesParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.ImageID, "image-id", "AMI ID").At(1).Required(),
				cmdlet.Enum(&p.InstanceType, nil, "instance-type", "Instance type, for example t3.micro"),
				cmdlet.Int32(&p.MinCount, "min-count", "Minimum number of instances to launch").Default("1"),
				cmdlet.Int32(&p.MaxCount, "max-count", "Maximum number of instances to launch").Default("1"),
				cmdlet.String(&p.KeyName, "key-name", "Key pair name"),
				cmdlet.Strings(&p.SecurityGroupIDs, "security-group-ids", "Security group IDs").Alias("security-group-id"),
				cmdlet.String(&p.SubnetID, "subnet-id", "Subnet to launch into"),
				cmdlet.String(&p.PrivateIP, "private-ip-address", "Primary private IPv4 address"),
				cmdlet.String(&p.UserData, "user-data", "User data as text or file://<path>"),
				cmdlet.String(&p.AvailabilityZone, "availability-zone", "Availability zone placement"),
				cmdlet.String(&p.PlacementGroup, "placement-group", "Placement group name"),
				cmdlet.Enum(&p.Tenancy, types.Tenancy("").Values(), "tenancy", "Placement tenancy"),
				cmdlet.Bool(&p.Monitoring, "monitoring", "Enable detailed monitoring"),
				cmdlet.Bool(&p.EbsOptimized, "ebs-optimized", "Launch EBS optimized"),
				cmdlet.Enum(&p.ShutdownBehavior, types.ShutdownBehavior("").Values(),
					"instance-initiated-shutdown-behavior", "What an OS-initiated shutdown does"),
				tagParam(&p.Tags),
				cmdlet.String(&p.ClientToken, "client-token", "Idempotency token"),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p runInstancesParams) string { return ptr.Deref(p.ImageID, "") },
		Prepare: func(p runInstancesParams) (runInstancesParams, error) {
			if p.MinCount != nil && p.MaxCount != nil && *p.MinCount > *p.MaxCount {
				return p, fmt.Errorf("--min-count %d exceeds --max-count %d", *p.MinCount, *p.MaxCount)
			}
			if p.UserData == nil {
				return p, nil
			}
			data, err := readUserData(*p.UserData)
			if err != nil {
				return p, err
			}
			p.UserData = ptr.To(base64.StdEncoding.EncodeToString(data))
			return p, nil
		},
		Request: func(p runInstancesParams) *ec2.RunInstancesInput {
			in := &ec2.RunInstancesInput{
				ImageId:                           p.ImageID,
				InstanceType:                      p.InstanceType,
				MinCount:                          p.MinCount,
				MaxCount:                          p.MaxCount,
				KeyName:                           p.KeyName,
				SecurityGroupIds:                  p.SecurityGroupIDs,
				SubnetId:                          p.SubnetID,
				PrivateIpAddress:                  p.PrivateIP,
				UserData:                          p.UserData,
				EbsOptimized:                      p.EbsOptimized,
				InstanceInitiatedShutdownBehavior: p.ShutdownBehavior,
				TagSpecifications:                 tags.Specifications(types.ResourceTypeInstance, p.Tags),
				ClientToken:                       p.ClientToken,
				DryRun:                            p.DryRun,
			}
			if cmdlet.AnySet(p.AvailabilityZone, p.PlacementGroup, p.Tenancy) {
				in.Placement = &types.Placement{
					AvailabilityZone: p.AvailabilityZone,
					GroupName:        p.PlacementGroup,
					Tenancy:          p.Tenancy,
				}
			}
			if ptr.IsSet(p.Monitoring) {
				in.Monitoring = &types.RunInstancesMonitoringEnabled{Enabled: p.Monitoring}
			}
			return in
		},
		Call:   call(platform.API.RunInstances),
		Output: func(out *ec2.RunInstancesOutput) any { return out.Instances },
	}
}

// readUserData resolves a file:// reference or returns the text as is.
func readUserData(v string) ([]byte, error) {
	path, ok := strings.CutPrefix(v, "file://")
	if !ok {
		return []byte(v), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user data: %w", err)
	}
	return data, nil
}

func startInstances() *operation[instanceIDsParams, ec2.StartInstancesInput, ec2.StartInstancesOutput] {
	return &operation[instanceIDsParams, ec2.StartInstancesInput, ec2.StartInstancesOutput]{
		Name:   "start-instances",
		Group:  GroupInstance,
		Short:  "Start stopped instances",
		Impact: cmdlet.ImpactLow,
		Params: instanceIDs,
		Target: instanceTarget,
		Request: func(p instanceIDsParams) *ec2.StartInstancesInput {
			return &ec2.StartInstancesInput{InstanceIds: p.InstanceIDs, DryRun: p.DryRun}
		},
		Call:   call(platform.API.StartInstances),
		Output: func(out *ec2.StartInstancesOutput) any { return out.StartingInstances },
	}
}

type stopInstancesParams struct {
	instanceIDsParams
	ForceStop *bool
	Hibernate *bool
}

func stopInstances() *operation[stopInstancesParams, ec2.StopInstancesInput, ec2.StopInstancesOutput] {
	return &operation[stopInstancesParams, ec2.StopInstancesInput, ec2.StopInstancesOutput]{
		Name:   "stop-instances",
		Group:  GroupInstance,
		Short:  "Stop running instances",
		Impact: cmdlet.ImpactMedium,
		Params: func(p *stopInstancesParams) []*cmdlet.Param {
			return append(instanceIDs(&p.instanceIDsParams),
				cmdlet.Bool(&p.ForceStop, "force-stop", "Stop without flushing file system caches"),
				cmdlet.Bool(&p.Hibernate, "hibernate", "Hibernate instead of stopping"),
			)
		},
		Target: func(p stopInstancesParams) string { return instanceTarget(p.instanceIDsParams) },
		Request: func(p stopInstancesParams) *ec2.StopInstancesInput {
			return &ec2.StopInstancesInput{
				InstanceIds: p.InstanceIDs,
				Force:       p.ForceStop,
				Hibernate:   p.Hibernate,
				DryRun:      p.DryRun,
			}
		},
		Call:   call(platform.API.StopInstances),
		Output: func(out *ec2.StopInstancesOutput) any { return out.StoppingInstances },
	}
}

func rebootInstances() *operation[instanceIDsParams, ec2.RebootInstancesInput, ec2.RebootInstancesOutput] {
	return &operation[instanceIDsParams, ec2.RebootInstancesInput, ec2.RebootInstancesOutput]{
		Name:   "reboot-instances",
		Group:  GroupInstance,
		Short:  "Reboot instances",
		Impact: cmdlet.ImpactMedium,
		Params: instanceIDs,
		Target: instanceTarget,
		Request: func(p instanceIDsParams) *ec2.RebootInstancesInput {
			return &ec2.RebootInstancesInput{InstanceIds: p.InstanceIDs, DryRun: p.DryRun}
		},
		Call:     call(platform.API.RebootInstances),
		Output:   cmdlet.Nothing[ec2.RebootInstancesOutput],
		PassThru: func(p instanceIDsParams) any { return p.InstanceIDs },
	}
}

func terminateInstances() *operation[instanceIDsParams, ec2.TerminateInstancesInput, ec2.TerminateInstancesOutput] {
	return &operation[instanceIDsParams, ec2.TerminateInstancesInput, ec2.TerminateInstancesOutput]{
		Name:   "terminate-instances",
		Group:  GroupInstance,
		Short:  "Terminate instances",
		Impact: cmdlet.ImpactHigh,
		Params: instanceIDs,
		Target: instanceTarget,
		Request: func(p instanceIDsParams) *ec2.TerminateInstancesInput {
			return &ec2.TerminateInstancesInput{InstanceIds: p.InstanceIDs, DryRun: p.DryRun}
		},
		Call:   call(platform.API.TerminateInstances),
		Output: func(out *ec2.TerminateInstancesOutput) any { return out.TerminatingInstances },
	}
}

func monitorInstances() *operation[instanceIDsParams, ec2.MonitorInstancesInput, ec2.MonitorInstancesOutput] {
	return &operation[instanceIDsParams, ec2.MonitorInstancesInput, ec2.MonitorInstancesOutput]{
		Name:   "monitor-instances",
		Group:  GroupInstance,
		Short:  "Enable detailed monitoring",
		Impact: cmdlet.ImpactLow,
		Params: instanceIDs,
		Target: instanceTarget,
		Request: func(p instanceIDsParams) *ec2.MonitorInstancesInput {
			return &ec2.MonitorInstancesInput{InstanceIds: p.InstanceIDs, DryRun: p.DryRun}
		},
		Call:   call(platform.API.MonitorInstances),
		Output: func(out *ec2.MonitorInstancesOutput) any { return out.InstanceMonitorings },
	}
}

func unmonitorInstances() *operation[instanceIDsParams, ec2.UnmonitorInstancesInput, ec2.UnmonitorInstancesOutput] {
	return &operation[instanceIDsParams, ec2.UnmonitorInstancesInput, ec2.UnmonitorInstancesOutput]{
		Name:   "unmonitor-instances",
		Group:  GroupInstance,
		Short:  "Disable detailed monitoring",
		Impact: cmdlet.ImpactLow,
		Params: instanceIDs,
		Target: instanceTarget,
		Request: func(p instanceIDsParams) *ec2.UnmonitorInstancesInput {
			return &ec2.UnmonitorInstancesInput{InstanceIds: p.InstanceIDs, DryRun: p.DryRun}
		},
		Call:   call(platform.API.UnmonitorInstances),
		Output: func(out *ec2.UnmonitorInstancesOutput) any { return out.InstanceMonitorings },
	}
}

type getConsoleOutputParams struct {
	InstanceID *string
	Latest     *bool
	DryRun     *bool
}

// ConsoleOutput is the decoded console output of an instance.
type ConsoleOutput struct {
	InstanceID string `json:"InstanceId"`
	Timestamp  string `json:"Timestamp,omitempty"`
	Output     string `json:"Output"`
}

func getConsoleOutput() *operation[getConsoleOutputParams, ec2.GetConsoleOutputInput, ec2.GetConsoleOutputOutput] {
	return &operation[getConsoleOutputParams, ec2.GetConsoleOutputInput, ec2.GetConsoleOutputOutput]{
		Name:  "get-console-output",
		Group: GroupInstance,
		Short: "Show the console output of an instance",
		Params: func(p *getConsoleOutputParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.InstanceID, "instance-id", "Instance ID").At(1).Required(),
				cmdlet.Bool(&p.Latest, "latest", "Return the most recent output (Nitro only)"),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p getConsoleOutputParams) *ec2.GetConsoleOutputInput {
			return &ec2.GetConsoleOutputInput{InstanceId: p.InstanceID, Latest: p.Latest, DryRun: p.DryRun}
		},
		Call:   call(platform.API.GetConsoleOutput),
		Output: decodeConsoleOutput,
	}
}

func decodeConsoleOutput(out *ec2.GetConsoleOutputOutput) any {
	result := ConsoleOutput{InstanceID: ptr.Deref(out.InstanceId, "")}
	if out.Timestamp != nil {
		result.Timestamp = out.Timestamp.UTC().Format("2006-01-02T15:04:05Z")
	}
	raw := ptr.Deref(out.Output, "")
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		result.Output = string(decoded)
	} else {
		result.Output = raw
	}
	return result
}
