// Package ec2 binds the command layer to the AWS EC2 service.
//
// # Architecture
//
//   - client.go: the API interface the catalog calls through, split by
//     resource family, and the per-target client cache
//   - errors.go: classification of service errors for rendering and exit codes
//
// # Client Configuration
//
// Clients are built with config.LoadDefaultConfig, so the usual AWS
// environment variables and shared config files apply. Values supplied on
// the command line or in the ec2ctl settings file take precedence:
//
//   - Region and shared config profile
//   - Static access keys
//   - An endpoint URL override for private or emulated endpoints
//   - SDK retry mode and maximum attempts
//
// One client is created per distinct target and reused for the lifetime of
// the process.
package ec2
