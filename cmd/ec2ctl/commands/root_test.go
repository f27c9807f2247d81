package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2ctl/internal/catalog"
	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "ec2ctl", cmd.Use)
	assert.Len(t, cmd.Groups(), len(catalog.Groups()))
	assert.Len(t, cmd.Commands(), len(catalog.Operations())+3)

	for _, name := range []string{"describe-volumes", "attach-volume", "operations", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{
		"config", "region", "profile", "endpoint-url", "output",
		"access-key", "secret-key", "session-token", "metrics-file", "debug",
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestRoot_DescribeVolumes(t *testing.T) {
	ta := newTestApp(t, &fakeEC2{})

	err := ta.execute("describe-volumes", "--region", "eu-west-1", "--profile", "ops")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"VolumeId":"vol-1","Size":8}]`, ta.stdout.String())
	require.Len(t, ta.targets, 1)
	assert.Equal(t, cmdlet.Target{Region: "eu-west-1", Profile: "ops"}, ta.targets[0])
}

func TestRoot_SettingsFileAndFlags(t *testing.T) {
	ta := newTestApp(t, &fakeEC2{})
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: us-east-1\noutput: yaml\n"), 0o600))

	err := ta.execute("describe-volumes", "--config", path, "--access-key", "AKID", "--secret-key", "SECRET")
	require.NoError(t, err)

	assert.Contains(t, ta.stdout.String(), "- Size: 8\n")
	require.Len(t, ta.targets, 1)
	assert.Equal(t, "us-east-1", ta.targets[0].Region)
	assert.Equal(t, cmdlet.Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}, ta.targets[0].Credentials)
}

func TestRoot_SetupErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "bad output", args: []string{"describe-volumes", "-o", "xml"}, errMsg: "invalid output format"},
		{name: "half credentials", args: []string{"describe-volumes", "--access-key", "AKID"}, errMsg: "must be given together"},
		{name: "missing config", args: []string{"describe-volumes", "--config", "/nonexistent/ec2ctl.yaml"}, errMsg: "failed to read config file"},
		{name: "bad endpoint", args: []string{"describe-volumes", "--endpoint-url", "localhost"}, errMsg: "endpoint_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, &fakeEC2{})

			err := ta.execute(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, ta.targets)
			assert.Equal(t, platform.ExitLocal, platform.ExitCode(err))
		})
	}
}

func TestRoot_DeleteDeclined(t *testing.T) {
	fake := &fakeEC2{}
	ta := newTestApp(t, fake)

	err := ta.execute("delete-volume", "vol-1")
	require.NoError(t, err)

	assert.Empty(t, fake.deleted)
	assert.Empty(t, ta.stdout.String())
	require.Len(t, ta.prompts, 1)
	assert.Equal(t, cmdlet.Prompt{Operation: "delete-volume", Target: "vol-1"}, ta.prompts[0])
	assert.Contains(t, ta.stderr.String(), "operation not confirmed")
}

func TestRoot_DeleteConfirmed(t *testing.T) {
	fake := &fakeEC2{}
	ta := newTestApp(t, fake)
	ta.confirm = true

	err := ta.execute("delete-volume", "vol-1", "--pass-thru")
	require.NoError(t, err)

	assert.Equal(t, []string{"vol-1"}, fake.deleted)
	assert.JSONEq(t, `"vol-1"`, ta.stdout.String())
}

func TestRoot_ForceSkipsPrompt(t *testing.T) {
	fake := &fakeEC2{}
	ta := newTestApp(t, fake)

	require.NoError(t, ta.execute("delete-volume", "vol-1", "--force"))

	assert.Equal(t, []string{"vol-1"}, fake.deleted)
	assert.Empty(t, ta.prompts)
}

func TestRoot_RemoteErrorWritesMetrics(t *testing.T) {
	fake := &fakeEC2{err: &smithy.OperationError{
		ServiceID:     "EC2",
		OperationName: "DescribeVolumes",
		Err:           &smithy.GenericAPIError{Code: "UnauthorizedOperation", Message: "not allowed"},
	}}
	ta := newTestApp(t, fake)
	metricsFile := filepath.Join(t.TempDir(), "ec2ctl.prom")

	err := ta.execute("describe-volumes", "--metrics-file", metricsFile)
	require.Error(t, err)

	assert.Equal(t, platform.ExitAPI, platform.ExitCode(err))
	assert.Equal(t, "An error occurred (UnauthorizedOperation) when calling the DescribeVolumes operation: not allowed",
		platform.Describe(err))
	assert.Empty(t, ta.stdout.String())

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ec2ctl_remote_calls_total{operation="describe-volumes",result="unauthorized"} 1`)
}

func TestRoot_DebugLogging(t *testing.T) {
	ta := newTestApp(t, &fakeEC2{})

	require.NoError(t, ta.execute("describe-volumes", "--debug"))

	assert.Contains(t, ta.stderr.String(), "settings resolved")
	assert.Contains(t, ta.stderr.String(), "invoking")
}

func TestRoot_HelpWorksWithBrokenSettings(t *testing.T) {
	ta := newTestApp(t, &fakeEC2{})
	t.Setenv("EC2CTL_OUTPUT", "xml")

	require.NoError(t, ta.execute("describe-volumes", "--help"))
	assert.Contains(t, ta.stdout.String(), "Describe EBS volumes")
}
