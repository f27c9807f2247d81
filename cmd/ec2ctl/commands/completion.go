package commands

import (
	"io"

	"github.com/spf13/cobra"
)

// completionShells lists the supported shells in help order.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionScripts generates the script for each shell, with
// descriptions where the shell can show them.
var completionScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for ec2ctl. Completion covers
operation names, flags and the allowed values of enum flags.

  $ source <(ec2ctl completion bash)
  $ ec2ctl completion zsh > "${fpath[1]}/_ec2ctl"
  $ ec2ctl completion fish | source
  PS> ec2ctl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
