package commands

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	"github.com/imamik/ec2ctl/internal/config"
	"github.com/imamik/ec2ctl/internal/output"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

// settings loads the settings file and environment and applies the
// command line flags on top.
func (a *app) settings() (*config.Settings, error) {
	s, err := config.Load(a.flags.config)
	if err != nil {
		return nil, err
	}

	if a.flags.region != "" {
		s.Region = a.flags.region
	}
	if a.flags.profile != "" {
		s.Profile = a.flags.profile
	}
	if a.flags.endpointURL != "" {
		s.EndpointURL = a.flags.endpointURL
	}
	if a.flags.output != "" {
		s.Output = a.flags.output
	}
	if a.flags.debug {
		s.Debug = true
	}
	if (a.flags.accessKey == "") != (a.flags.secretKey == "") {
		return nil, errors.New("--access-key and --secret-key must be given together")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// setup fills in the shared environment for the operation about to run.
func (a *app) setup() error {
	s, err := a.settings()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(s.Output)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "ec2ctl"})
	if s.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	clients := a.clients
	if clients == nil {
		clients = platform.NewCache(platform.RetryOptions{
			MaxAttempts: s.Retry.MaxAttempts,
			Mode:        s.RetryMode(),
		}, logger)
	}
	confirmer := a.confirmer
	if confirmer == nil {
		confirmer = cmdlet.NewPromptConfirmer(logger)
	}

	a.env.Target = cmdlet.Target{
		Region:      s.Region,
		Profile:     s.Profile,
		EndpointURL: s.EndpointURL,
		Credentials: cmdlet.Credentials{
			AccessKeyID:     a.flags.accessKey,
			SecretAccessKey: a.flags.secretKey,
			SessionToken:    a.flags.sessionToken,
		},
	}
	a.env.Clients = clients
	a.env.Gate = cmdlet.Gate{Confirmer: confirmer, Threshold: s.ConfirmThreshold()}
	a.env.Sink = output.NewWriter(format, a.stdout, a.stderr)
	a.env.Logger = logger
	a.env.Observer = a.metrics
	a.env.Resolve = platform.ResolveFailure

	logger.Debug("settings resolved",
		"region", s.Region, "profile", s.Profile, "output", s.Output, "confirm", s.Confirm)
	return nil
}
