// Package commands defines the CLI command structure and flag bindings.
//
// Every catalog operation becomes one subcommand. Settings are resolved
// lazily when an operation runs, so help and completion work even with a
// broken settings file.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/imamik/ec2ctl/internal/catalog"
	"github.com/imamik/ec2ctl/internal/cmdlet"
	"github.com/imamik/ec2ctl/internal/metrics"
	"github.com/imamik/ec2ctl/internal/output"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

// globalFlags are the persistent flags shared by every operation.
type globalFlags struct {
	config       string
	region       string
	profile      string
	endpointURL  string
	output       string
	accessKey    string
	secretKey    string
	sessionToken string
	metricsFile  string
	debug        bool
}

// app holds the state shared by the command tree of one process.
type app struct {
	flags   globalFlags
	env     *cmdlet.Env[platform.API]
	metrics *metrics.Recorder
	stdout  io.Writer
	stderr  io.Writer

	// clients and confirmer replace the real client cache and terminal
	// prompt when set.
	clients   cmdlet.ClientSource[platform.API]
	confirmer cmdlet.Confirmer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		env:     &cmdlet.Env[platform.API]{},
		metrics: metrics.NewRecorder(),
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Root returns the root command for the ec2ctl CLI.
func Root() *cobra.Command {
	return newApp(os.Stdout, os.Stderr).root()
}

func (a *app) root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ec2ctl",
		Short:         "Manage Amazon EC2 resources from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.flags.config, "config", "", "Settings file (default $XDG_CONFIG_HOME/ec2ctl/config.yaml)")
	fs.StringVar(&a.flags.region, "region", "", "AWS region, overriding settings and the SDK default")
	fs.StringVar(&a.flags.profile, "profile", "", "Shared config profile")
	fs.StringVar(&a.flags.endpointURL, "endpoint-url", "", "Send requests to this endpoint instead of the regional default")
	fs.StringVarP(&a.flags.output, "output", "o", "", "Output format: json, yaml or text")
	fs.StringVar(&a.flags.accessKey, "access-key", "", "Static access key id")
	fs.StringVar(&a.flags.secretKey, "secret-key", "", "Static secret access key")
	fs.StringVar(&a.flags.sessionToken, "session-token", "", "Session token for temporary credentials")
	fs.StringVar(&a.flags.metricsFile, "metrics-file", "", "Write call metrics in textfile-collector format to this path")
	fs.BoolVar(&a.flags.debug, "debug", false, "Enable debug logging")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	for _, g := range catalog.Groups() {
		cmd.AddGroup(&cobra.Group{ID: g.ID, Title: g.Title})
	}
	for _, op := range catalog.Operations() {
		cmd.AddCommand(a.wrap(op.Cobra(a.env)))
	}

	cmd.AddCommand(a.wrap(a.operations()))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// wrap resolves the environment before the command runs and writes the
// metrics file afterwards, whether or not the command failed.
func (a *app) wrap(cmd *cobra.Command) *cobra.Command {
	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}
		err := run(c, args)
		a.flushMetrics()
		return err
	}
	return cmd
}

func (a *app) flushMetrics() {
	if a.flags.metricsFile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.flags.metricsFile); err != nil {
		a.env.Logger.Warn("metrics not written", "err", err)
	}
}
