package tokenrule

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/tokenrule/internal/version"
	"github.com/arthur-debert/tokenrule/pkg/cobrax/topics"
	"github.com/arthur-debert/tokenrule/pkg/config"
	"github.com/arthur-debert/tokenrule/pkg/datastore"
	"github.com/arthur-debert/tokenrule/pkg/filesystem"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/style"
)

//go:embed topics
var topicsFS embed.FS

// app holds state shared by all commands of one invocation
type app struct {
	configPath string
	verbosity  int
	cfg        *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "tokenrule",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "rules", Title: "RULES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(a.newCommitCmd())
	rootCmd.AddCommand(a.newEditCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newShowCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newDeleteCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newVersionCmd())

	sub, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		opts := topics.Options{Renderer: topics.Plain}
		if style.ColorEnabled(os.Stdout) {
			opts.Renderer = topics.NewMarkdown("", 0)
		}
		if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// setup loads configuration and initializes logging and output styling
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfiguration(config.LoadOptions{ConfigPath: a.configPath})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg

	verbosity := a.verbosity
	if cfg.Logging.Verbosity > verbosity {
		verbosity = cfg.Logging.Verbosity
	}
	logging.SetupLoggerWithWriter(verbosity, cmd.ErrOrStderr())
	style.SetColor(colorEnabled(cmd.OutOrStdout()))

	log.Debug().Str("command", cmd.Name()).Msg("Command started")
	return nil
}

// openStore returns the file store selected by config, adjusted by flags
func (a *app) openStore(dir, format string) (*datastore.FileStore, error) {
	if dir == "" {
		dir = a.cfg.StoreDir()
	}
	f := a.cfg.StoreFormat()
	if format != "" {
		parsed, err := datastore.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		f = parsed
	}
	return datastore.NewFileStore(filesystem.NewOS(), dir, f)
}

// renderer picks styled or plain output for w
func renderer(w io.Writer) style.Renderer {
	return style.NewRenderer(colorEnabled(w))
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && style.ColorEnabled(f)
}

func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && style.IsTerminal(f)
}

// storeFlags registers the flags selecting the rule store
func storeFlags(cmd *cobra.Command, dir, format *string) {
	cmd.Flags().StringVar(dir, "store-dir", "", MsgFlagStoreDir)
	cmd.Flags().StringVar(format, "format", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range datastore.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
