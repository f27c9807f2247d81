package catalog

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

// fakeEC2 embeds the API so only the methods a test needs are implemented.
// Calling anything else panics on the nil interface.
type fakeEC2 struct {
	platform.API

	requests []any
	err      error

	instancePages []ec2.DescribeInstancesOutput
	instanceCalls int
	consoleOutput *ec2.GetConsoleOutputOutput
}

func (f *fakeEC2) record(in any) { f.requests = append(f.requests, in) }

func (f *fakeEC2) AttachVolume(_ context.Context, in *ec2.AttachVolumeInput, _ ...func(*ec2.Options)) (*ec2.AttachVolumeOutput, error) {
	f.record(in)
	if f.err != nil {
		return nil, f.err
	}
	return &ec2.AttachVolumeOutput{
		VolumeId:   in.VolumeId,
		InstanceId: in.InstanceId,
		Device:     in.Device,
		State:      types.VolumeAttachmentStateAttaching,
	}, nil
}

func (f *fakeEC2) DeleteVolume(_ context.Context, in *ec2.DeleteVolumeInput, _ ...func(*ec2.Options)) (*ec2.DeleteVolumeOutput, error) {
	f.record(in)
	return &ec2.DeleteVolumeOutput{}, f.err
}

func (f *fakeEC2) ModifyVolume(_ context.Context, in *ec2.ModifyVolumeInput, _ ...func(*ec2.Options)) (*ec2.ModifyVolumeOutput, error) {
	f.record(in)
	return &ec2.ModifyVolumeOutput{VolumeModification: &types.VolumeModification{VolumeId: in.VolumeId}}, f.err
}

func (f *fakeEC2) DescribeInstances(_ context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.record(in)
	f.instanceCalls++
	if f.instanceCalls > len(f.instancePages) {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	out := f.instancePages[f.instanceCalls-1]
	return &out, nil
}

func (f *fakeEC2) RunInstances(_ context.Context, in *ec2.RunInstancesInput, _ ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	f.record(in)
	return &ec2.RunInstancesOutput{Instances: []types.Instance{{InstanceId: ptrTo("i-new")}}}, f.err
}

func (f *fakeEC2) GetConsoleOutput(_ context.Context, in *ec2.GetConsoleOutputInput, _ ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error) {
	f.record(in)
	return f.consoleOutput, f.err
}

func (f *fakeEC2) CreateVpnConnection(_ context.Context, in *ec2.CreateVpnConnectionInput, _ ...func(*ec2.Options)) (*ec2.CreateVpnConnectionOutput, error) {
	f.record(in)
	return &ec2.CreateVpnConnectionOutput{VpnConnection: &types.VpnConnection{VpnConnectionId: ptrTo("vpn-1")}}, f.err
}

func (f *fakeEC2) AuthorizeSecurityGroupIngress(_ context.Context, in *ec2.AuthorizeSecurityGroupIngressInput, _ ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	f.record(in)
	return &ec2.AuthorizeSecurityGroupIngressOutput{Return: ptrTo(true)}, f.err
}

func (f *fakeEC2) CreateRoute(_ context.Context, in *ec2.CreateRouteInput, _ ...func(*ec2.Options)) (*ec2.CreateRouteOutput, error) {
	f.record(in)
	return &ec2.CreateRouteOutput{Return: ptrTo(true)}, f.err
}

func (f *fakeEC2) CreateCustomerGateway(_ context.Context, in *ec2.CreateCustomerGatewayInput, _ ...func(*ec2.Options)) (*ec2.CreateCustomerGatewayOutput, error) {
	f.record(in)
	return &ec2.CreateCustomerGatewayOutput{CustomerGateway: &types.CustomerGateway{CustomerGatewayId: ptrTo("cgw-1")}}, f.err
}

func findCommand(t *testing.T, name string) Command {
	t.Helper()
	for _, op := range Operations() {
		if op.Info().Name == name {
			return op
		}
	}
	t.Fatalf("operation %q not in catalog", name)
	return nil
}

// invoke runs a catalog command against the fake and returns what it emitted.
func invoke(t *testing.T, client *fakeEC2, name string, args ...string) ([]cmdlet.Envelope, error) {
	t.Helper()
	rec := &cmdlet.Recorder{}
	env := &cmdlet.Env[platform.API]{
		Target: cmdlet.Target{Region: "eu-west-1"},
		Clients: cmdlet.ClientFunc[platform.API](func(context.Context, cmdlet.Target) (platform.API, error) {
			return client, nil
		}),
		Gate: cmdlet.Gate{Threshold: cmdlet.ImpactHigh},
		Sink: rec,
	}
	cmd := findCommand(t, name).Cobra(env)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return rec.Envelopes(), err
}

func singleRequest[In any](t *testing.T, client *fakeEC2) *In {
	t.Helper()
	require.Len(t, client.requests, 1)
	in, ok := client.requests[0].(*In)
	require.True(t, ok, "unexpected request type %T", client.requests[0])
	return in
}

func ptrTo[T any](v T) *T { return &v }
