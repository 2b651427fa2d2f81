package rules

import (
	"strings"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// ValidatedRule is the immutable rule snapshot produced by a successful
// commit. Outside this package it can only be obtained from
// ValidateAndCommit or rebuilt from a stored record with Restore.
type ValidatedRule struct {
	nodeID               string
	pattern              string
	expressionType       types.ExpressionType
	caseSensitivity      types.CaseSensitivity
	tokenRange           types.TokenRange
	canonicalEquivalence bool
	dotAll               bool
	multiline            bool
	unixLines            bool
	engine               Engine
}

func newValidatedRule(nodeID string, d types.Draft, engine Engine) ValidatedRule {
	return ValidatedRule{
		nodeID:               nodeID,
		pattern:              d.Pattern,
		expressionType:       d.ExpressionType,
		caseSensitivity:      d.CaseSensitivity,
		tokenRange:           d.TokenRange,
		canonicalEquivalence: d.CanonicalEquivalence,
		dotAll:               d.DotAll,
		multiline:            d.Multiline,
		unixLines:            d.UnixLines,
		engine:               engine,
	}
}

func (r ValidatedRule) NodeID() string                         { return r.nodeID }
func (r ValidatedRule) Pattern() string                        { return r.pattern }
func (r ValidatedRule) ExpressionType() types.ExpressionType   { return r.expressionType }
func (r ValidatedRule) CaseSensitivity() types.CaseSensitivity { return r.caseSensitivity }
func (r ValidatedRule) TokenRange() types.TokenRange           { return r.tokenRange }
func (r ValidatedRule) CanonicalEquivalence() bool             { return r.canonicalEquivalence }
func (r ValidatedRule) DotAll() bool                           { return r.dotAll }
func (r ValidatedRule) Multiline() bool                        { return r.multiline }
func (r ValidatedRule) UnixLines() bool                        { return r.unixLines }

// Engine is the regex engine the pattern was validated with
func (r ValidatedRule) Engine() Engine { return r.engine }

// IsValid reports whether r came out of a commit or a checked restore
func (r ValidatedRule) IsValid() bool { return !r.IsZero() }

// IsZero reports whether r is the zero value
func (r ValidatedRule) IsZero() bool { return r.nodeID == "" }

// Modifier returns the value of the named modifier
func (r ValidatedRule) Modifier(m types.Modifier) bool {
	switch m {
	case types.ModifierCanonicalEquivalence:
		return r.canonicalEquivalence
	case types.ModifierDotAll:
		return r.dotAll
	case types.ModifierMultiline:
		return r.multiline
	case types.ModifierUnixLines:
		return r.unixLines
	}
	return false
}

// Flags returns the mnemonics of the enabled modifiers in display order
func (r ValidatedRule) Flags() []string {
	var flags []string
	for _, m := range types.Modifiers() {
		if r.Modifier(m) {
			flags = append(flags, m.Mnemonic())
		}
	}
	return flags
}

// Record returns the serializable form of r
func (r ValidatedRule) Record() types.RuleRecord {
	return types.RuleRecord{
		NodeID:               r.nodeID,
		Pattern:              r.pattern,
		ExpressionType:       r.expressionType,
		CaseSensitivity:      r.caseSensitivity,
		TokenRange:           r.tokenRange,
		CanonicalEquivalence: r.canonicalEquivalence,
		DotAll:               r.dotAll,
		Multiline:            r.multiline,
		UnixLines:            r.unixLines,
		Engine:               string(r.engine),
		IsValid:              r.IsValid(),
	}
}

// Restore rebuilds a rule from a stored record. The record has to describe
// a rule a commit could have produced: marked valid, known enum values,
// bounds inside [0,99], modifiers that agree with the locks and a pattern
// that passes CheckPattern with the recorded engine. Anything else fails
// with INVALID_RECORD, or with the pattern error itself.
func Restore(rec types.RuleRecord) (ValidatedRule, error) {
	invalid := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrInvalidRecord, format, args...).WithDetail("node", rec.NodeID)
	}

	if strings.TrimSpace(rec.NodeID) == "" {
		return ValidatedRule{}, errors.New(errors.ErrInvalidRecord, "rule record has no node id")
	}
	if !rec.IsValid {
		return ValidatedRule{}, invalid("rule for node %s is not marked valid", rec.NodeID)
	}
	if !rec.ExpressionType.Valid() {
		return ValidatedRule{}, invalid("unknown expression type %q", rec.ExpressionType)
	}
	if !rec.CaseSensitivity.Valid() {
		return ValidatedRule{}, invalid("unknown case sensitivity %q", rec.CaseSensitivity)
	}
	engine, err := ParseEngine(rec.Engine)
	if err != nil {
		return ValidatedRule{}, invalid("unknown regex engine %q", rec.Engine)
	}

	tr := rec.TokenRange
	if tr.From != ClampTokenBound(tr.From) || tr.To != ClampTokenBound(tr.To) {
		return ValidatedRule{}, invalid("token range %d to %d is outside [%d,%d]",
			tr.From, tr.To, types.MinTokenBound, types.MaxTokenBound)
	}

	d := rec.Draft()
	if Normalize(d) != d {
		return ValidatedRule{}, invalid("modifiers of node %s contradict the %s lock",
			rec.NodeID, LockReason(d, types.ModifierDotAll))
	}

	if err := CheckPattern(rec.Pattern, rec.ExpressionType, engine); err != nil {
		return ValidatedRule{}, err
	}
	return newValidatedRule(rec.NodeID, d, engine), nil
}
