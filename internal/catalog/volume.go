package catalog

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
	"github.com/imamik/ec2ctl/internal/util/ptr"
	"github.com/imamik/ec2ctl/internal/util/tags"
)

func volumeOperations() []Command {
	return []Command{
		describeVolumes(),
		createVolume(),
		deleteVolume(),
		attachVolume(),
		detachVolume(),
		modifyVolume(),
		createSnapshot(),
		deleteSnapshot(),
		describeSnapshots(),
	}
}

type describeVolumesParams struct {
	VolumeIDs []string
	Filters   []types.Filter
	DryRun    *bool
}

func describeVolumes() *operation[describeVolumesParams, ec2.DescribeVolumesInput, ec2.DescribeVolumesOutput] {
	return &operation[describeVolumesParams, ec2.DescribeVolumesInput, ec2.DescribeVolumesOutput]{
		Name:  "describe-volumes",
		Group: GroupVolume,
		Short: "Describe EBS volumes",
		Params: func(p *describeVolumesParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.VolumeIDs, "volume-ids", "Volume IDs").At(1).Alias("volume-id"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeVolumesParams) *ec2.DescribeVolumesInput {
			return &ec2.DescribeVolumesInput{VolumeIds: p.VolumeIDs, Filters: p.Filters, DryRun: p.DryRun}
		},
		Call:   call(platform.API.DescribeVolumes),
		Output: func(out *ec2.DescribeVolumesOutput) any { return out.Volumes },
		Pages: &cmdlet.Pages[ec2.DescribeVolumesInput, ec2.DescribeVolumesOutput]{
			Token:       func(out *ec2.DescribeVolumesOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeVolumesInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeVolumesInput, size *int32) { in.MaxResults = size },
			Count:       func(out *ec2.DescribeVolumesOutput) int { return len(out.Volumes) },
		},
	}
}

type createVolumeParams struct {
	AvailabilityZone *string
	Size             *int32
	SnapshotID       *string
	VolumeType       types.VolumeType
	Iops             *int32
	Throughput       *int32
	Encrypted        *bool
	KmsKeyID         *string
	MultiAttach      *bool
	Tags             []types.Tag
	DryRun           *bool
}

func createVolume() *operation[createVolumeParams, ec2.CreateVolumeInput, ec2.CreateVolumeOutput] {
	return &operation[createVolumeParams, ec2.CreateVolumeInput, ec2.CreateVolumeOutput]{
		Name:    "create-volume",
		Group:   GroupVolume,
		Short:   "Create an EBS volume",
		Impact:  cmdlet.ImpactLow,
		Example: `  ec2ctl create-volume eu-west-1a --size 100 --volume-type gp3 --tag Name=data`,
		Params: func(p *createVolumeParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.AvailabilityZone, "availability-zone", "Availability zone").At(1).Required(),
				cmdlet.Int32(&p.Size, "size", "Size in GiB"),
				cmdlet.String(&p.SnapshotID, "snapshot-id", "Snapshot to restore from"),
				cmdlet.Enum(&p.VolumeType, types.VolumeType("").Values(), "volume-type", "Volume type"),
				cmdlet.Int32(&p.Iops, "iops", "Provisioned IOPS"),
				cmdlet.Int32(&p.Throughput, "throughput", "Throughput in MiB/s (gp3)"),
				cmdlet.Bool(&p.Encrypted, "encrypted", "Encrypt the volume"),
				cmdlet.String(&p.KmsKeyID, "kms-key-id", "KMS key for encryption"),
				cmdlet.Bool(&p.MultiAttach, "multi-attach-enabled", "Allow attaching to several instances"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createVolumeParams) string { return ptr.Deref(p.AvailabilityZone, "") },
		Request: func(p createVolumeParams) *ec2.CreateVolumeInput {
			return &ec2.CreateVolumeInput{
				AvailabilityZone:   p.AvailabilityZone,
				Size:               p.Size,
				SnapshotId:         p.SnapshotID,
				VolumeType:         p.VolumeType,
				Iops:               p.Iops,
				Throughput:         p.Throughput,
				Encrypted:          p.Encrypted,
				KmsKeyId:           p.KmsKeyID,
				MultiAttachEnabled: p.MultiAttach,
				TagSpecifications:  tags.Specifications(types.ResourceTypeVolume, p.Tags),
				DryRun:             p.DryRun,
			}
		},
		Call: call(platform.API.CreateVolume),
	}
}

type volumeIDParams struct {
	VolumeID *string
	DryRun   *bool
}

func deleteVolume() *operation[volumeIDParams, ec2.DeleteVolumeInput, ec2.DeleteVolumeOutput] {
	return &operation[volumeIDParams, ec2.DeleteVolumeInput, ec2.DeleteVolumeOutput]{
		Name:   "delete-volume",
		Group:  GroupVolume,
		Short:  "Delete an EBS volume",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *volumeIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VolumeID, "volume-id", "Volume ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p volumeIDParams) string { return ptr.Deref(p.VolumeID, "") },
		Request: func(p volumeIDParams) *ec2.DeleteVolumeInput {
			return &ec2.DeleteVolumeInput{VolumeId: p.VolumeID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteVolume),
		Output:   cmdlet.Nothing[ec2.DeleteVolumeOutput],
		PassThru: func(p volumeIDParams) any { return ptr.Deref(p.VolumeID, "") },
	}
}

type attachVolumeParams struct {
	VolumeID   *string
	InstanceID *string
	Device     *string
	DryRun     *bool
}

func attachVolume() *operation[attachVolumeParams, ec2.AttachVolumeInput, ec2.AttachVolumeOutput] {
	return &operation[attachVolumeParams, ec2.AttachVolumeInput, ec2.AttachVolumeOutput]{
		Name:    "attach-volume",
		Group:   GroupVolume,
		Short:   "Attach a volume to an instance",
		Impact:  cmdlet.ImpactMedium,
		Example: `  ec2ctl attach-volume vol-123 i-456 /dev/sdh`,
		Params: func(p *attachVolumeParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VolumeID, "volume-id", "Volume ID").At(1).Required(),
				cmdlet.String(&p.InstanceID, "instance-id", "Instance ID").At(2).Required(),
				cmdlet.String(&p.Device, "device", "Device name, for example /dev/sdh").At(3).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p attachVolumeParams) string { return ptr.Deref(p.VolumeID, "") },
		Request: func(p attachVolumeParams) *ec2.AttachVolumeInput {
			return &ec2.AttachVolumeInput{
				VolumeId:   p.VolumeID,
				InstanceId: p.InstanceID,
				Device:     p.Device,
				DryRun:     p.DryRun,
			}
		},
		Call: call(platform.API.AttachVolume),
		Output: func(out *ec2.AttachVolumeOutput) any {
			return volumeAttachment(out.AttachTime, out.DeleteOnTermination, out.Device, out.InstanceId,
				out.State, out.VolumeId, out.AssociatedResource, out.InstanceOwningService)
		},
	}
}

type detachVolumeParams struct {
	VolumeID    *string
	InstanceID  *string
	Device      *string
	ForceDetach *bool
	DryRun      *bool
}

func detachVolume() *operation[detachVolumeParams, ec2.DetachVolumeInput, ec2.DetachVolumeOutput] {
	return &operation[detachVolumeParams, ec2.DetachVolumeInput, ec2.DetachVolumeOutput]{
		Name:   "detach-volume",
		Group:  GroupVolume,
		Short:  "Detach a volume from an instance",
		Impact: cmdlet.ImpactMedium,
		Params: func(p *detachVolumeParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VolumeID, "volume-id", "Volume ID").At(1).Required(),
				cmdlet.String(&p.InstanceID, "instance-id", "Instance ID"),
				cmdlet.String(&p.Device, "device", "Device name"),
				cmdlet.Bool(&p.ForceDetach, "force-detach", "Force the detachment; data may be lost"),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p detachVolumeParams) string { return ptr.Deref(p.VolumeID, "") },
		Request: func(p detachVolumeParams) *ec2.DetachVolumeInput {
			return &ec2.DetachVolumeInput{
				VolumeId:   p.VolumeID,
				InstanceId: p.InstanceID,
				Device:     p.Device,
				Force:      p.ForceDetach,
				DryRun:     p.DryRun,
			}
		},
		Call: call(platform.API.DetachVolume),
		Output: func(out *ec2.DetachVolumeOutput) any {
			return volumeAttachment(out.AttachTime, out.DeleteOnTermination, out.Device, out.InstanceId,
				out.State, out.VolumeId, out.AssociatedResource, out.InstanceOwningService)
		},
	}
}

// volumeAttachment folds the flat attach and detach responses into the
// attachment record describe-volumes reports.
func volumeAttachment(attachTime *time.Time, deleteOnTermination *bool, device, instanceID *string,
	state types.VolumeAttachmentState, volumeID, associatedResource, owningService *string,
) types.VolumeAttachment {
	return types.VolumeAttachment{
		AttachTime:            attachTime,
		DeleteOnTermination:   deleteOnTermination,
		Device:                device,
		InstanceId:            instanceID,
		State:                 state,
		VolumeId:              volumeID,
		AssociatedResource:    associatedResource,
		InstanceOwningService: owningService,
	}
}

type modifyVolumeParams struct {
	VolumeID    *string
	Size        *int32
	VolumeType  types.VolumeType
	Iops        *int32
	Throughput  *int32
	MultiAttach *bool
	DryRun      *bool
}

func modifyVolume() *operation[modifyVolumeParams, ec2.ModifyVolumeInput, ec2.ModifyVolumeOutput] {
	return &operation[modifyVolumeParams, ec2.ModifyVolumeInput, ec2.ModifyVolumeOutput]{
		Name:   "modify-volume",
		Group:  GroupVolume,
		Short:  "Change the size, type or performance of a volume",
		Impact: cmdlet.ImpactMedium,
		Params: func(p *modifyVolumeParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VolumeID, "volume-id", "Volume ID").At(1).Required(),
				cmdlet.Int32(&p.Size, "size", "New size in GiB"),
				cmdlet.Enum(&p.VolumeType, types.VolumeType("").Values(), "volume-type", "New volume type"),
				cmdlet.Int32(&p.Iops, "iops", "New provisioned IOPS"),
				cmdlet.Int32(&p.Throughput, "throughput", "New throughput in MiB/s"),
				cmdlet.Bool(&p.MultiAttach, "multi-attach-enabled", "Allow attaching to several instances"),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p modifyVolumeParams) string { return ptr.Deref(p.VolumeID, "") },
		Prepare: func(p modifyVolumeParams) (modifyVolumeParams, error) {
			if !cmdlet.AnySet(p.Size, p.VolumeType, p.Iops, p.Throughput, p.MultiAttach) {
				return p, errNothingToModify
			}
			return p, nil
		},
		Request: func(p modifyVolumeParams) *ec2.ModifyVolumeInput {
			return &ec2.ModifyVolumeInput{
				VolumeId:           p.VolumeID,
				Size:               p.Size,
				VolumeType:         p.VolumeType,
				Iops:               p.Iops,
				Throughput:         p.Throughput,
				MultiAttachEnabled: p.MultiAttach,
				DryRun:             p.DryRun,
			}
		},
		Call:   call(platform.API.ModifyVolume),
		Output: func(out *ec2.ModifyVolumeOutput) any { return out.VolumeModification },
	}
}

type createSnapshotParams struct {
	VolumeID    *string
	Description *string
	Tags        []types.Tag
	DryRun      *bool
}

func createSnapshot() *operation[createSnapshotParams, ec2.CreateSnapshotInput, ec2.CreateSnapshotOutput] {
	return &operation[createSnapshotParams, ec2.CreateSnapshotInput, ec2.CreateSnapshotOutput]{
		Name:   "create-snapshot",
		Group:  GroupVolume,
		Short:  "Snapshot an EBS volume",
		Impact: cmdlet.ImpactLow,
		Params: func(p *createSnapshotParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.VolumeID, "volume-id", "Volume ID").At(1).Required(),
				cmdlet.String(&p.Description, "description", "Snapshot description"),
				tagParam(&p.Tags),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p createSnapshotParams) string { return ptr.Deref(p.VolumeID, "") },
		Request: func(p createSnapshotParams) *ec2.CreateSnapshotInput {
			return &ec2.CreateSnapshotInput{
				VolumeId:          p.VolumeID,
				Description:       p.Description,
				TagSpecifications: tags.Specifications(types.ResourceTypeSnapshot, p.Tags),
				DryRun:            p.DryRun,
			}
		},
		Call: call(platform.API.CreateSnapshot),
	}
}

type snapshotIDParams struct {
	SnapshotID *string
	DryRun     *bool
}

func deleteSnapshot() *operation[snapshotIDParams, ec2.DeleteSnapshotInput, ec2.DeleteSnapshotOutput] {
	return &operation[snapshotIDParams, ec2.DeleteSnapshotInput, ec2.DeleteSnapshotOutput]{
		Name:   "delete-snapshot",
		Group:  GroupVolume,
		Short:  "Delete a snapshot",
		Impact: cmdlet.ImpactHigh,
		Params: func(p *snapshotIDParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.String(&p.SnapshotID, "snapshot-id", "Snapshot ID").At(1).Required(),
				dryRunParam(&p.DryRun),
			}
		},
		Target: func(p snapshotIDParams) string { return ptr.Deref(p.SnapshotID, "") },
		Request: func(p snapshotIDParams) *ec2.DeleteSnapshotInput {
			return &ec2.DeleteSnapshotInput{SnapshotId: p.SnapshotID, DryRun: p.DryRun}
		},
		Call:     call(platform.API.DeleteSnapshot),
		Output:   cmdlet.Nothing[ec2.DeleteSnapshotOutput],
		PassThru: func(p snapshotIDParams) any { return ptr.Deref(p.SnapshotID, "") },
	}
}

type describeSnapshotsParams struct {
	SnapshotIDs  []string
	OwnerIDs     []string
	RestorableBy []string
	Filters      []types.Filter
	DryRun       *bool
}

func describeSnapshots() *operation[describeSnapshotsParams, ec2.DescribeSnapshotsInput, ec2.DescribeSnapshotsOutput] {
	return &operation[describeSnapshotsParams, ec2.DescribeSnapshotsInput, ec2.DescribeSnapshotsOutput]{
		Name:    "describe-snapshots",
		Group:   GroupVolume,
		Short:   "Describe EBS snapshots",
		Example: `  ec2ctl describe-snapshots --owner-ids self`,
		Params: func(p *describeSnapshotsParams) []*cmdlet.Param {
			return []*cmdlet.Param{
				cmdlet.Strings(&p.SnapshotIDs, "snapshot-ids", "Snapshot IDs").At(1).Alias("snapshot-id"),
				cmdlet.Strings(&p.OwnerIDs, "owner-ids", "Owner account IDs, self or amazon").Alias("owner-id"),
				cmdlet.Strings(&p.RestorableBy, "restorable-by-user-ids", "Accounts that can create volumes from the snapshot"),
				filterParam(&p.Filters),
				dryRunParam(&p.DryRun),
			}
		},
		Request: func(p describeSnapshotsParams) *ec2.DescribeSnapshotsInput {
			return &ec2.DescribeSnapshotsInput{
				SnapshotIds:         p.SnapshotIDs,
				OwnerIds:            p.OwnerIDs,
				RestorableByUserIds: p.RestorableBy,
				Filters:             p.Filters,
				DryRun:              p.DryRun,
			}
		},
		Call:   call(platform.API.DescribeSnapshots),
		Output: func(out *ec2.DescribeSnapshotsOutput) any { return out.Snapshots },
		Pages: &cmdlet.Pages[ec2.DescribeSnapshotsInput, ec2.DescribeSnapshotsOutput]{
			Token:       func(out *ec2.DescribeSnapshotsOutput) *string { return out.NextToken },
			SetToken:    func(in *ec2.DescribeSnapshotsInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *ec2.DescribeSnapshotsInput, size *int32) { in.MaxResults = size },
			Count:       func(out *ec2.DescribeSnapshotsOutput) int { return len(out.Snapshots) },
		},
	}
}
