package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables overriding the settings file.
const (
	EnvRegion           = "EC2CTL_REGION"
	EnvProfile          = "EC2CTL_PROFILE"
	EnvEndpointURL      = "EC2CTL_ENDPOINT_URL"
	EnvOutput           = "EC2CTL_OUTPUT"
	EnvConfirm          = "EC2CTL_CONFIRM"
	EnvDebug            = "EC2CTL_DEBUG"
	EnvRetryMaxAttempts = "EC2CTL_RETRY_MAX_ATTEMPTS"
	EnvRetryMode        = "EC2CTL_RETRY_MODE"
)

// ApplyEnv overrides s with the EC2CTL_* variables that are set.
// Unparseable numbers and booleans are errors.
func ApplyEnv(s *Settings) error {
	parseString(EnvRegion, &s.Region)
	parseString(EnvProfile, &s.Profile)
	parseString(EnvEndpointURL, &s.EndpointURL)
	parseString(EnvOutput, &s.Output)
	parseString(EnvConfirm, &s.Confirm)
	parseString(EnvRetryMode, &s.Retry.Mode)

	if err := parseBool(EnvDebug, &s.Debug); err != nil {
		return err
	}
	return parseInt(EnvRetryMaxAttempts, &s.Retry.MaxAttempts)
}

// parseString sets dst when the variable is non-empty.
func parseString(envVar string, dst *string) {
	if val := os.Getenv(envVar); val != "" {
		*dst = val
	}
}

// parseInt parses an integer from an environment variable.
// If the variable is not set, dst is left unchanged.
func parseInt(envVar string, dst *int) error {
	val := os.Getenv(envVar)
	if val == "" {
		return nil
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envVar, val, err)
	}

	*dst = i
	return nil
}

func parseBool(envVar string, dst *bool) error {
	val := os.Getenv(envVar)
	if val == "" {
		return nil
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envVar, val, err)
	}

	*dst = b
	return nil
}
