package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	"github.com/imamik/ec2ctl/internal/config"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

// fakeEC2 implements only the calls these tests make.
type fakeEC2 struct {
	platform.API

	err     error
	deleted []string
}

func (f *fakeEC2) DescribeVolumes(context.Context, *ec2.DescribeVolumesInput, ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ec2.DescribeVolumesOutput{
		Volumes: []types.Volume{{VolumeId: aws.String("vol-1"), Size: aws.Int32(8)}},
	}, nil
}

func (f *fakeEC2) DeleteVolume(_ context.Context, in *ec2.DeleteVolumeInput, _ ...func(*ec2.Options)) (*ec2.DeleteVolumeOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.VolumeId))
	return &ec2.DeleteVolumeOutput{}, f.err
}

type testApp struct {
	*app
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	targets []cmdlet.Target
	prompts []cmdlet.Prompt
	confirm bool
}

// newTestApp isolates the process from any real settings file or
// EC2CTL_* variables and replaces the client cache and prompt.
func newTestApp(t *testing.T, client platform.API) *testApp {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		config.EnvRegion, config.EnvProfile, config.EnvEndpointURL, config.EnvOutput,
		config.EnvConfirm, config.EnvDebug, config.EnvRetryMaxAttempts, config.EnvRetryMode,
	} {
		t.Setenv(name, "")
	}

	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = newApp(ta.stdout, ta.stderr)
	ta.clients = cmdlet.ClientFunc[platform.API](func(_ context.Context, target cmdlet.Target) (platform.API, error) {
		ta.targets = append(ta.targets, target)
		return client, nil
	})
	ta.confirmer = cmdlet.ConfirmFunc(func(_ context.Context, p cmdlet.Prompt) (bool, error) {
		ta.prompts = append(ta.prompts, p)
		return ta.confirm, nil
	})
	return ta
}

func (ta *testApp) execute(args ...string) error {
	cmd := ta.root()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
