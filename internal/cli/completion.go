package cli

import (
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: dedent.Dedent(`
			Print a completion script for owl2json to stdout.

			  bash:        source <(owl2json completion bash)
			  zsh:         owl2json completion zsh > "${fpath[1]}/_owl2json"
			  fish:        owl2json completion fish | source
			  powershell:  owl2json completion powershell | Out-String | Invoke-Expression

			Add the line for your shell to its startup file to keep completions
			across sessions.`),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
