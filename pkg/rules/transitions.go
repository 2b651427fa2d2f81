package rules

import (
	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// Lock reasons reported in MODIFIER_LOCKED error details
const (
	LockLiteral   = "literal"
	LockCaseMatch = "case-match"
)

// Normalize re-applies the draft invariants to d
func Normalize(d types.Draft) types.Draft {
	d.TokenRange.From = ClampTokenBound(d.TokenRange.From)
	d.TokenRange.To = ClampTokenBound(d.TokenRange.To)

	// Literal lock first: it takes precedence over the case-match lock
	if d.ExpressionType == types.ExpressionLiteral {
		d.CanonicalEquivalence = false
		d.DotAll = false
		d.Multiline = false
		d.UnixLines = false
		return d
	}

	if d.CaseSensitivity == types.CaseMatch {
		d.DotAll = true
	}
	return d
}

// ClampTokenBound forces v into [MinTokenBound, MaxTokenBound]
func ClampTokenBound(v int) int {
	if v < types.MinTokenBound {
		return types.MinTokenBound
	}
	if v > types.MaxTokenBound {
		return types.MaxTokenBound
	}
	return v
}

// LockReason returns why modifier m cannot be edited, or "" if it can
func LockReason(d types.Draft, m types.Modifier) string {
	if d.ExpressionType == types.ExpressionLiteral {
		return LockLiteral
	}
	if m == types.ModifierDotAll && d.CaseSensitivity == types.CaseMatch {
		return LockCaseMatch
	}
	return ""
}

// IsModifierLocked reports whether modifier m is currently derived
func IsModifierLocked(d types.Draft, m types.Modifier) bool {
	return LockReason(d, m) != ""
}

// LockedModifiers returns the modifiers that cannot be edited right now
func LockedModifiers(d types.Draft) []types.Modifier {
	var locked []types.Modifier
	for _, m := range types.Modifiers() {
		if IsModifierLocked(d, m) {
			locked = append(locked, m)
		}
	}
	return locked
}

// SetPattern replaces the pattern text and clears any commit error
func SetPattern(d types.Draft, text string) types.Draft {
	d.Pattern = text
	d.ErrorMessage = ""
	return Normalize(d)
}

// SetExpressionType switches between regular and literal matching and
// clears any commit error. Switching back to regular does not restore
// modifiers that the literal lock reset.
func SetExpressionType(d types.Draft, t types.ExpressionType) (types.Draft, error) {
	if !t.Valid() {
		return d, errors.Newf(errors.ErrInvalidInput, "unknown expression type %q", t)
	}
	d.ExpressionType = t
	d.ErrorMessage = ""
	return Normalize(d), nil
}

// SetCaseSensitivity changes the case handling mode. Selecting "match"
// forces dotAll on; other modes leave it as it was.
func SetCaseSensitivity(d types.Draft, c types.CaseSensitivity) (types.Draft, error) {
	if !c.Valid() {
		return d, errors.Newf(errors.ErrInvalidInput, "unknown case sensitivity %q", c)
	}
	d.CaseSensitivity = c
	return Normalize(d), nil
}

// SetModifier sets one of the four modifiers. A locked modifier is not
// changed and a MODIFIER_LOCKED error is returned with the original draft.
func SetModifier(d types.Draft, m types.Modifier, value bool) (types.Draft, error) {
	if reason := LockReason(d, m); reason != "" {
		return d, errors.Newf(errors.ErrModifierLocked, "%s cannot be changed while %s is selected", m, lockSubject(reason)).
			WithDetail("modifier", string(m)).
			WithDetail("reason", reason)
	}

	switch m {
	case types.ModifierCanonicalEquivalence:
		d.CanonicalEquivalence = value
	case types.ModifierDotAll:
		d.DotAll = value
	case types.ModifierMultiline:
		d.Multiline = value
	case types.ModifierUnixLines:
		d.UnixLines = value
	default:
		return d, errors.Newf(errors.ErrInvalidInput, "unknown modifier %q", m)
	}
	return Normalize(d), nil
}

// SetTokenRangeEnabled turns the token range restriction on or off
func SetTokenRangeEnabled(d types.Draft, enabled bool) types.Draft {
	d.TokenRange.Enabled = enabled
	return Normalize(d)
}

// SetTokenRangeBound stores one bound of the token range. Out of range
// values are clamped, never rejected.
func SetTokenRangeBound(d types.Draft, which types.TokenBound, value int) (types.Draft, error) {
	switch which {
	case types.BoundFrom:
		d.TokenRange.From = ClampTokenBound(value)
	case types.BoundTo:
		d.TokenRange.To = ClampTokenBound(value)
	default:
		return d, errors.Newf(errors.ErrInvalidInput, "unknown token range bound %q", which)
	}
	return Normalize(d), nil
}

func lockSubject(reason string) string {
	if reason == LockLiteral {
		return "literal text"
	}
	return "match case"
}
