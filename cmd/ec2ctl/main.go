// Package main is the entry point for the ec2ctl CLI.
//
// ec2ctl exposes Amazon EC2 control-plane operations as one command per
// API call: instances, volumes and snapshots, VPC networking, VPN and
// routing. Results are written to stdout as JSON, YAML or text.
//
// For detailed usage information, run:
//
//	ec2ctl --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/imamik/ec2ctl/cmd/ec2ctl/commands"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Root().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, platform.Describe(err))
		os.Exit(platform.ExitCode(err))
	}
}
