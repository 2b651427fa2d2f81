package rules

import (
	"strings"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

type commitOptions struct {
	engine Engine
}

// CommitOption customizes ValidateAndCommit
type CommitOption func(*commitOptions)

// WithEngine selects the regex engine regular patterns are compiled with
func WithEngine(e Engine) CommitOption {
	return func(o *commitOptions) {
		o.engine = e
	}
}

// ValidateAndCommit validates draft and, on success, persists a
// ValidatedRule through sink and then hides the editor through hider.
//
// On a validation failure draft.ErrorMessage is set and the error is
// returned; sink and hider are not called and no other field changes.
// A sink failure is returned as SINK_WRITE with a zero rule, recorded in
// ErrorMessage, and hider is not called.
func ValidateAndCommit(draft *types.Draft, nodeID string, sink PersistenceSink, hider VisibilityController, opts ...CommitOption) (ValidatedRule, error) {
	logger := logging.GetLogger("rules.commit")

	o := commitOptions{engine: DefaultEngine}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.engine.Valid() {
		o.engine = DefaultEngine
	}

	if draft == nil {
		return ValidatedRule{}, errors.New(errors.ErrInvalidInput, "no draft to commit")
	}
	if strings.TrimSpace(nodeID) == "" {
		return ValidatedRule{}, errors.New(errors.ErrMissingNodeID, "a node id is required to commit a rule")
	}
	if sink == nil {
		return ValidatedRule{}, errors.New(errors.ErrInvalidInput, "no persistence sink")
	}

	if err := CheckPattern(draft.Pattern, draft.ExpressionType, o.engine); err != nil {
		draft.ErrorMessage = errors.UserMessage(err)
		logger.Debug().
			Str("node", nodeID).
			Str("code", string(errors.GetErrorCode(err))).
			Interface("details", errors.GetErrorDetails(err)).
			Msg("Rule validation failed")
		return ValidatedRule{}, err
	}

	rule := newValidatedRule(nodeID, Normalize(*draft), o.engine)

	if err := sink.Persist(rule); err != nil {
		wrapped := errors.Wrapf(err, errors.ErrSinkWrite, "failed to save rule for node %s", nodeID)
		draft.ErrorMessage = errors.UserMessage(wrapped)
		logger.Warn().Err(err).Str("node", nodeID).Msg("Persistence sink rejected rule")
		return ValidatedRule{}, wrapped
	}
	if hider != nil {
		hider.Hide()
	}

	draft.ErrorMessage = ""

	logger.Info().
		Str("node", nodeID).
		Str("expressionType", string(rule.ExpressionType())).
		Strs("flags", rule.Flags()).
		Msg("Rule committed")

	return rule, nil
}
