package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memestyle/pkg/storage"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for memestyle.

Bash:
  $ source <(memestyle completion bash)

Zsh:
  $ memestyle completion zsh > "${fpath[1]}/_memestyle"

Fish:
  $ memestyle completion fish | source

PowerShell:
  PS> memestyle completion powershell | Out-String | Invoke-Expression

Style keys are completed from the configured store.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeKey completes the single KEY argument from the store's keys,
// always offering the top and bottom caption keys.
func (c *CLI) completeKey(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	keys := []string{textstyle.TopKey, textstyle.BottomKey}
	_ = c.withStore(cmd.Context(), func(store storage.Store) error {
		lister, ok := store.(storage.Lister)
		if !ok {
			return nil
		}
		stored, err := lister.Keys(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range stored {
			if k != textstyle.TopKey && k != textstyle.BottomKey {
				keys = append(keys, k)
			}
		}
		return nil
	})

	var matches []string
	for _, k := range keys {
		if strings.HasPrefix(k, toComplete) {
			matches = append(matches, k)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
