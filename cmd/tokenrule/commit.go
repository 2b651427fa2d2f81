package tokenrule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tokenrule/pkg/datastore"
	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/style"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

type commitFlags struct {
	nodeID     string
	pattern    string
	exprType   string
	literal    bool
	caseMode   string
	modifiers  []string
	tokenRange string
	engine     string
	storeDir   string
	format     string
	dryRun     bool
}

func (a *app) newCommitCmd() *cobra.Command {
	var f commitFlags

	cmd := &cobra.Command{
		Use:     "commit",
		Short:   MsgCommitShort,
		Long:    MsgCommitLong,
		Example: MsgCommitExample,
		GroupID: "rules",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommit(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.nodeID, "node-id", "", MsgFlagNodeID)
	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", MsgFlagPattern)
	cmd.Flags().StringVar(&f.exprType, "type", "", MsgFlagType)
	cmd.Flags().BoolVar(&f.literal, "literal", false, MsgFlagLiteral)
	cmd.Flags().StringVar(&f.caseMode, "case", "", MsgFlagCase)
	cmd.Flags().StringArrayVarP(&f.modifiers, "modifier", "m", nil, MsgFlagModifier)
	cmd.Flags().StringVar(&f.tokenRange, "token-range", "", MsgFlagTokenRange)
	cmd.Flags().StringVar(&f.engine, "engine", "", MsgFlagEngine)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	storeFlags(cmd, &f.storeDir, &f.format)
	_ = cmd.MarkFlagRequired("node-id")
	cmd.MarkFlagsMutuallyExclusive("type", "literal")

	return cmd
}

func (a *app) runCommit(cmd *cobra.Command, f commitFlags) error {
	logger := logging.GetLogger("cmd.commit")
	out := cmd.OutOrStdout()
	r := renderer(out)

	events, err := commitEvents(f)
	if err != nil {
		return err
	}

	engine, err := a.engine(f.engine)
	if err != nil {
		return err
	}

	var sink datastore.Store
	var location string
	if f.dryRun {
		sink = datastore.NewMemoryStore()
		location = "memory"
	} else {
		fs, err := a.openStore(f.storeDir, f.format)
		if err != nil {
			return err
		}
		sink, location = fs, fs.Path(f.nodeID)
	}

	previous, loadErr := sink.Load(f.nodeID)
	if loadErr != nil && !errors.IsErrorCode(loadErr, errors.ErrRuleNotFound) {
		logger.Warn().Err(loadErr).Msg("Could not read previous rule")
	}

	c, err := rules.NewConfigurator(f.nodeID, sink, rules.HideFunc(func() {}),
		rules.WithDefaults(a.cfg.DraftDefaults()),
		rules.WithValidationEngine(engine))
	if err != nil {
		return err
	}

	for _, ev := range events {
		if err := c.Apply(ev); err != nil {
			return err
		}
	}

	rule, err := c.Commit()
	if err != nil {
		_, _ = fmt.Fprintln(out, r.RenderDraft(f.nodeID, c.Draft()))
		return err
	}

	logger.Info().
		Str("node", rule.NodeID()).
		Str("session", c.SessionID()).
		Bool("dryRun", f.dryRun).
		Msg("Rule committed")

	if f.dryRun {
		_, _ = fmt.Fprintf(out, MsgRuleDryRun, rule.NodeID())
		return nil
	}
	_, _ = fmt.Fprintf(out, MsgRuleSaved, rule.NodeID(), location)
	writeReplaced(cmd, r, previous, rule)
	return nil
}

// commitEvents turns the commit flags into edits. The type goes first so
// later modifier flags see the final locks.
func commitEvents(f commitFlags) ([]rules.Event, error) {
	var events []rules.Event

	exprType := f.exprType
	if f.literal {
		exprType = string(types.ExpressionLiteral)
	}
	if exprType != "" {
		t, err := types.ParseExpressionType(exprType)
		if err != nil {
			return nil, err
		}
		events = append(events, rules.ExpressionTypeChanged{Type: t})
	}

	if f.caseMode != "" {
		c, err := types.ParseCaseSensitivity(f.caseMode)
		if err != nil {
			return nil, err
		}
		events = append(events, rules.CaseSensitivityChanged{Mode: c})
	}

	for _, toggle := range f.modifiers {
		name, value, ok := strings.Cut(toggle, "=")
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrInvalidToggle, toggle)
		}
		m, err := types.ParseModifier(name)
		if err != nil {
			return nil, err
		}
		on, err := rules.ParseSwitch(value)
		if err != nil {
			return nil, err
		}
		events = append(events, rules.ModifierToggled{Modifier: m, Value: on})
	}

	if f.tokenRange != "" {
		rangeEvents, err := tokenRangeEvents(f.tokenRange)
		if err != nil {
			return nil, err
		}
		events = append(events, rangeEvents...)
	}

	events = append(events, rules.PatternChanged{Text: f.pattern})
	return events, nil
}

// tokenRangeEvents parses "off" or "<from>:<to>"
func tokenRangeEvents(arg string) ([]rules.Event, error) {
	if on, err := rules.ParseSwitch(arg); err == nil && !on {
		return []rules.Event{rules.TokenRangeToggled{Enabled: false}}, nil
	}

	from, to, ok := strings.Cut(arg, ":")
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrInvalidRange, arg)
	}
	fromN, err := parseBound(from)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrInvalidRange, arg)
	}
	toN, err := parseBound(to)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrInvalidRange, arg)
	}

	return []rules.Event{
		rules.TokenRangeToggled{Enabled: true},
		rules.TokenBoundChanged{Bound: types.BoundFrom, Value: fromN},
		rules.TokenBoundChanged{Bound: types.BoundTo, Value: toN},
	}, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		if strings.HasPrefix(s, "-") {
			return types.MinTokenBound, nil
		}
		return types.MaxTokenBound, nil
	}
	return n, err
}

// engine resolves the validation engine from a flag or the config
func (a *app) engine(flag string) (rules.Engine, error) {
	if flag == "" {
		return a.cfg.Engine(), nil
	}
	return rules.ParseEngine(flag)
}

// writeReplaced prints the diff against the rule that was overwritten
func writeReplaced(cmd *cobra.Command, r style.Renderer, previous, rule rules.ValidatedRule) {
	if previous.IsZero() {
		return
	}
	out := cmd.OutOrStdout()
	diff := datastore.Diff(previous, rule)
	if diff == "" {
		_, _ = fmt.Fprint(out, MsgRuleUnchanged)
		return
	}
	_, _ = fmt.Fprintf(out, MsgRuleReplaced, r.RenderDiff(diff))
}
