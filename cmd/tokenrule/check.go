package tokenrule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/style"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

func (a *app) newCheckCmd() *cobra.Command {
	var (
		exprType string
		literal  bool
		engine   string
		storeDir string
		format   string
	)

	cmd := &cobra.Command{
		Use:     "check [pattern]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "rules",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(engine)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return a.checkStored(cmd, e, storeDir, format)
			}

			t := types.ExpressionRegular
			if literal {
				t = types.ExpressionLiteral
			} else if exprType != "" {
				if t, err = types.ParseExpressionType(exprType); err != nil {
					return err
				}
			}

			if err := rules.CheckPattern(args[0], t, e); err != nil {
				logging.GetLogger("cmd.check").Debug().
					Interface("details", errors.GetErrorDetails(err)).
					Msg("Pattern rejected")
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgPatternValid, style.SuccessIndicator(), t, e)
			return nil
		},
	}

	cmd.Flags().StringVar(&exprType, "type", "", MsgFlagType)
	cmd.Flags().BoolVar(&literal, "literal", false, MsgFlagLiteral)
	cmd.Flags().StringVar(&engine, "engine", "", MsgFlagEngine)
	storeFlags(cmd, &storeDir, &format)
	cmd.MarkFlagsMutuallyExclusive("type", "literal")

	return cmd
}

// checkStored re-validates every stored rule against engine. Files that
// no longer restore are reported too.
func (a *app) checkStored(cmd *cobra.Command, engine rules.Engine, storeDir, format string) error {
	store, err := a.openStore(storeDir, format)
	if err != nil {
		return err
	}
	entries, err := store.Scan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, e := range entries {
		err := e.Err
		if err == nil {
			err = rules.CheckPattern(e.Rule.Pattern(), e.Rule.ExpressionType(), engine)
		}
		if err != nil {
			failed++
			logging.GetLogger("cmd.check").Debug().
				Str("path", e.Path).
				Interface("details", errors.GetErrorDetails(err)).
				Msg("Stored rule rejected")
			_, _ = fmt.Fprintf(out, MsgRuleInvalid, style.ErrorIndicator(), e.NodeID, errors.UserMessage(err))
		}
	}
	if failed > 0 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrInvalidRules, failed)
	}
	_, _ = fmt.Fprintf(out, MsgAllRulesValid, style.SuccessIndicator(), len(entries), engine)
	return nil
}
