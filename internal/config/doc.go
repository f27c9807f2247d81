// Package config loads the ec2ctl settings file and the EC2CTL_*
// environment overrides.
//
// Precedence, lowest first: [Default], the YAML file at [DefaultPath] (or
// the path given with --config), the environment, and finally the command
// line flags, which the commands package applies on top of the loaded
// [Settings].
package config
