package rules

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// Event is a single user edit to a draft
type Event interface {
	// Name identifies the event in logs
	Name() string
	apply(d types.Draft) (types.Draft, error)
}

// PatternChanged replaces the pattern text
type PatternChanged struct{ Text string }

// ExpressionTypeChanged switches between regular and literal matching
type ExpressionTypeChanged struct{ Type types.ExpressionType }

// CaseSensitivityChanged selects a case handling mode
type CaseSensitivityChanged struct{ Mode types.CaseSensitivity }

// ModifierToggled sets one of the four modifiers
type ModifierToggled struct {
	Modifier types.Modifier
	Value    bool
}

// TokenRangeToggled enables or disables the token range
type TokenRangeToggled struct{ Enabled bool }

// TokenBoundChanged sets one bound of the token range
type TokenBoundChanged struct {
	Bound types.TokenBound
	Value int
}

func (PatternChanged) Name() string         { return "pattern" }
func (ExpressionTypeChanged) Name() string  { return "expression-type" }
func (CaseSensitivityChanged) Name() string { return "case-sensitivity" }
func (ModifierToggled) Name() string        { return "modifier" }
func (TokenRangeToggled) Name() string      { return "token-range" }
func (TokenBoundChanged) Name() string      { return "token-bound" }

func (e PatternChanged) apply(d types.Draft) (types.Draft, error) {
	return SetPattern(d, e.Text), nil
}

func (e ExpressionTypeChanged) apply(d types.Draft) (types.Draft, error) {
	return SetExpressionType(d, e.Type)
}

func (e CaseSensitivityChanged) apply(d types.Draft) (types.Draft, error) {
	return SetCaseSensitivity(d, e.Mode)
}

func (e ModifierToggled) apply(d types.Draft) (types.Draft, error) {
	return SetModifier(d, e.Modifier, e.Value)
}

func (e TokenRangeToggled) apply(d types.Draft) (types.Draft, error) {
	return SetTokenRangeEnabled(d, e.Enabled), nil
}

func (e TokenBoundChanged) apply(d types.Draft) (types.Draft, error) {
	return SetTokenRangeBound(d, e.Bound, e.Value)
}

// Apply runs ev against d. On error the returned draft equals d.
func Apply(d types.Draft, ev Event) (types.Draft, error) {
	if ev == nil {
		return d, errors.New(errors.ErrInvalidInput, "no event")
	}
	next, err := ev.apply(d)
	if err != nil {
		return d, err
	}
	return next, nil
}

// ParseEvent reads one edit command of the form "<verb> <argument>":
//
//	pattern <text>            the rest of the line, spaces kept
//	type regular|literal
//	case match|ignore|match-unicode
//	set <modifier> on|off
//	range on|off
//	from <n>
//	to <n>
func ParseEvent(line string) (Event, error) {
	line = strings.TrimLeft(line, " \t")
	verb, rest, _ := strings.Cut(line, " ")
	arg := strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "pattern":
		// The pattern keeps interior and trailing whitespace as typed
		return PatternChanged{Text: strings.TrimRight(rest, "\r\n")}, nil

	case "type":
		t, err := types.ParseExpressionType(arg)
		if err != nil {
			return nil, err
		}
		return ExpressionTypeChanged{Type: t}, nil

	case "case":
		c, err := types.ParseCaseSensitivity(arg)
		if err != nil {
			return nil, err
		}
		return CaseSensitivityChanged{Mode: c}, nil

	case "set":
		name, value, ok := strings.Cut(arg, " ")
		if !ok {
			return nil, errors.New(errors.ErrInvalidInput, "usage: set <modifier> on|off")
		}
		m, err := types.ParseModifier(name)
		if err != nil {
			return nil, err
		}
		b, err := ParseSwitch(value)
		if err != nil {
			return nil, err
		}
		return ModifierToggled{Modifier: m, Value: b}, nil

	case "range":
		b, err := ParseSwitch(arg)
		if err != nil {
			return nil, err
		}
		return TokenRangeToggled{Enabled: b}, nil

	case "from", "to":
		n, err := strconv.Atoi(arg)
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			// Still a number, just a huge one: clamp it like any other
			n, err = types.MaxTokenBound, nil
			if strings.HasPrefix(arg, "-") {
				n = types.MinTokenBound
			}
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "token bound must be a number, got %q", arg)
		}
		return TokenBoundChanged{Bound: types.TokenBound(strings.ToLower(verb)), Value: n}, nil
	}

	return nil, errors.Newf(errors.ErrInvalidInput, "unknown command %q", verb)
}

// ParseSwitch accepts on/off, yes/no and the strconv boolean spellings
func ParseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, errors.Newf(errors.ErrInvalidInput, "expected on or off, got %q", s)
	}
	return b, nil
}
