package tokenrule

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/tokenrule/internal/version"
	"github.com/arthur-debert/tokenrule/pkg/config"
	"github.com/arthur-debert/tokenrule/pkg/errors"
)

func newGenConfigCmd() *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", filepath.Dir(path))
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", path)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(tokenrule completion bash)

Zsh:
  $ tokenrule completion zsh > "${fpath[1]}/_tokenrule"

Fish:
  $ tokenrule completion fish | source

PowerShell:
  PS> tokenrule completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
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

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "TOKENRULE",
				Section: "1",
				Source:  "tokenrule " + version.Version,
				Manual:  "tokenrule manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
