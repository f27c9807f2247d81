package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2ctl/internal/cmdlet"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvRegion, EnvProfile, EnvEndpointURL, EnvOutput,
		EnvConfirm, EnvDebug, EnvRetryMaxAttempts, EnvRetryMode,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
region: eu-west-1
profile: ops
endpoint_url: http://localhost:4566
output: yaml
confirm: medium
debug: true
retry:
  max_attempts: 7
  mode: adaptive
`)

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, &Settings{
		Region:      "eu-west-1",
		Profile:     "ops",
		EndpointURL: "http://localhost:4566",
		Output:      "yaml",
		Confirm:     "medium",
		Debug:       true,
		Retry:       Retry{MaxAttempts: 7, Mode: "adaptive"},
	}, s)
	assert.Equal(t, cmdlet.ImpactMedium, s.ConfirmThreshold())
	assert.Equal(t, aws.RetryModeAdaptive, s.RetryMode())
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	s, err := LoadFile(writeConfig(t, "region: us-east-2\n"))
	require.NoError(t, err)

	assert.Equal(t, "us-east-2", s.Region)
	assert.Equal(t, "json", s.Output)
	assert.Equal(t, "high", s.Confirm)
}

func TestLoadFile_Empty(t *testing.T) {
	s, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown key", content: "regoin: eu-west-1\n", errMsg: "regoin"},
		{name: "malformed yaml", content: "region: [\n", errMsg: "failed to unmarshal yaml"},
		{name: "wrong type", content: "retry:\n  max_attempts: many\n", errMsg: "max_attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_DefaultPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ec2ctl"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ec2ctl", "config.yaml"), []byte("region: ap-south-1\n"), 0o600))

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", s.Region)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "region: eu-west-1\noutput: yaml\n")
	t.Setenv(EnvRegion, "us-west-2")
	t.Setenv(EnvRetryMaxAttempts, "3")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", s.Region)
	assert.Equal(t, "yaml", s.Output)
	assert.Equal(t, 3, s.Retry.MaxAttempts)
}

func TestLoad_InvalidFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfirm, "sometimes")

	_, err := Load(writeConfig(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr string
	}{
		{name: "defaults", modify: func(*Settings) {}},
		{name: "text output", modify: func(s *Settings) { s.Output = "text" }},
		{name: "bad output", modify: func(s *Settings) { s.Output = "xml" }, wantErr: "xml"},
		{name: "confirm none", modify: func(s *Settings) { s.Confirm = "none" }},
		{name: "bad confirm", modify: func(s *Settings) { s.Confirm = "always" }, wantErr: "confirmation level"},
		{name: "endpoint", modify: func(s *Settings) { s.EndpointURL = "https://ec2.example.com" }},
		{name: "relative endpoint", modify: func(s *Settings) { s.EndpointURL = "ec2.example.com" }, wantErr: "endpoint_url"},
		{name: "ftp endpoint", modify: func(s *Settings) { s.EndpointURL = "ftp://ec2.example.com" }, wantErr: "endpoint_url"},
		{name: "negative attempts", modify: func(s *Settings) { s.Retry.MaxAttempts = -1 }, wantErr: "max_attempts"},
		{name: "standard mode", modify: func(s *Settings) { s.Retry.Mode = "standard" }},
		{name: "bad mode", modify: func(s *Settings) { s.Retry.Mode = "eager" }, wantErr: "retry.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfirmThreshold_FallsBackToHigh(t *testing.T) {
	s := &Settings{Confirm: "bogus"}
	assert.Equal(t, cmdlet.ImpactHigh, s.ConfirmThreshold())
}
