package tokenrule

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/rules"
)

func (a *app) newEditCmd() *cobra.Command {
	var (
		engine   string
		storeDir string
		format   string
		fresh    bool
	)

	cmd := &cobra.Command{
		Use:     "edit <node-id>",
		Short:   MsgEditShort,
		Long:    MsgEditLong + "\n\n" + MsgEditHelp,
		GroupID: "rules",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd, args[0], engine, storeDir, format, fresh)
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", MsgFlagEngine)
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Start from the configured defaults even if a rule is stored")
	storeFlags(cmd, &storeDir, &format)

	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, nodeID, engineFlag, storeDir, format string, fresh bool) error {
	logger := logging.GetLogger("cmd.edit")
	out := cmd.OutOrStdout()
	r := renderer(out)
	interactive := isInteractive(cmd.InOrStdin())

	engine, err := a.engine(engineFlag)
	if err != nil {
		return err
	}
	store, err := a.openStore(storeDir, format)
	if err != nil {
		return err
	}

	start := a.cfg.DraftDefaults()
	previous, err := store.Load(nodeID)
	switch {
	case err == nil && !fresh:
		start = previous.Record().Draft()
	case err != nil && !errors.IsErrorCode(err, errors.ErrRuleNotFound):
		return err
	}

	hidden := false
	c, err := rules.NewConfigurator(nodeID, store, rules.HideFunc(func() { hidden = true }),
		rules.WithDefaults(start),
		rules.WithValidationEngine(engine))
	if err != nil {
		return err
	}
	logger.Debug().Str("node", nodeID).Str("session", c.SessionID()).Msg("Editing session opened")

	if interactive {
		_, _ = fmt.Fprintln(out, r.RenderDraft(nodeID, c.Draft()))
		_, _ = fmt.Fprint(out, MsgEditPrompt)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for !hidden && scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch strings.ToLower(trimmed) {
		case "", "#":
		case "help", "?":
			_, _ = fmt.Fprintln(out, MsgEditHelp)
		case "show":
			_, _ = fmt.Fprintln(out, r.RenderDraft(nodeID, c.Draft()))
		case "cancel", "quit", "exit":
			c.Cancel()
			_, _ = fmt.Fprint(out, MsgEditCancelled)
			return nil
		case "commit":
			rule, err := c.Commit()
			if err != nil {
				_, _ = fmt.Fprintln(out, r.RenderError(err))
				_, _ = fmt.Fprintln(out, r.RenderDraft(nodeID, c.Draft()))
				_, _ = fmt.Fprint(out, MsgEditCommitFail)
				break
			}
			_, _ = fmt.Fprintf(out, MsgRuleSaved, rule.NodeID(), store.Path(nodeID))
			writeReplaced(cmd, r, previous, rule)
		default:
			if strings.HasPrefix(trimmed, "#") {
				break
			}
			ev, err := rules.ParseEvent(line)
			if err == nil {
				err = c.Apply(ev)
			}
			if err != nil {
				_, _ = fmt.Fprintln(out, r.RenderError(err))
			}
		}

		if interactive && !hidden {
			_, _ = fmt.Fprint(out, MsgEditPrompt)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to read edit commands")
	}

	if !hidden {
		c.Cancel()
		_, _ = fmt.Fprint(out, MsgEditCancelled)
	}
	return nil
}
