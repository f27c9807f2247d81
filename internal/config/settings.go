package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	"github.com/imamik/ec2ctl/internal/output"
)

// Settings are the defaults every invocation starts from. Flags given on
// the command line take precedence over them.
type Settings struct {
	Region      string `mapstructure:"region"`
	Profile     string `mapstructure:"profile"`
	EndpointURL string `mapstructure:"endpoint_url"`
	Output      string `mapstructure:"output"`
	Confirm     string `mapstructure:"confirm"`
	Debug       bool   `mapstructure:"debug"`
	Retry       Retry  `mapstructure:"retry"`
}

// Retry tunes the SDK's retryer. Zero values keep the SDK defaults.
type Retry struct {
	MaxAttempts int    `mapstructure:"max_attempts"`
	Mode        string `mapstructure:"mode"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		Output:  string(output.FormatJSON),
		Confirm: cmdlet.ImpactHigh.String(),
	}
}

// DefaultPath returns the location of the settings file,
// $XDG_CONFIG_HOME/ec2ctl/config.yaml or ~/.config/ec2ctl/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "ec2ctl", "config.yaml"), nil
}

// Load reads the settings file at path, applies environment overrides and
// validates the result. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s, err := LoadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		s = Default()
	case err != nil:
		return nil, err
	}

	if err := ApplyEnv(s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return s, nil
}

// LoadFile parses a settings file on top of Default. Unknown keys are
// rejected.
func LoadFile(path string) (*Settings, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	s := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           s,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return s, nil
}

// Validate checks every field that has a closed set of values.
func (s *Settings) Validate() error {
	if _, err := output.ParseFormat(s.Output); err != nil {
		return err
	}
	if _, err := cmdlet.ParseImpact(s.Confirm); err != nil {
		return err
	}
	if s.EndpointURL != "" {
		u, err := url.Parse(s.EndpointURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid endpoint_url %q: must be an absolute http or https URL", s.EndpointURL)
		}
	}
	if s.Retry.MaxAttempts < 0 {
		return fmt.Errorf("invalid retry.max_attempts %d: must not be negative", s.Retry.MaxAttempts)
	}
	switch aws.RetryMode(s.Retry.Mode) {
	case "", aws.RetryModeStandard, aws.RetryModeAdaptive:
	default:
		return fmt.Errorf("invalid retry.mode %q: must be standard or adaptive", s.Retry.Mode)
	}
	return nil
}

// ConfirmThreshold returns the parsed confirmation threshold. It falls
// back to high when the value is invalid.
func (s *Settings) ConfirmThreshold() cmdlet.Impact {
	impact, err := cmdlet.ParseImpact(s.Confirm)
	if err != nil {
		return cmdlet.ImpactHigh
	}
	return impact
}

// RetryMode returns the retry mode as the SDK type.
func (s *Settings) RetryMode() aws.RetryMode {
	return aws.RetryMode(s.Retry.Mode)
}
