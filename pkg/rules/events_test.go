// Test Type: Unit Test
// Description: Tests for edit events, the reducer and command parsing

package rules_test

import (
	"testing"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		line string
		want rules.Event
	}{
		{"pattern [A-Z]+", rules.PatternChanged{Text: "[A-Z]+"}},
		{"pattern a b  c ", rules.PatternChanged{Text: "a b  c "}},
		{"pattern", rules.PatternChanged{Text: ""}},
		{"type literal", rules.ExpressionTypeChanged{Type: types.ExpressionLiteral}},
		{"TYPE Regular", rules.ExpressionTypeChanged{Type: types.ExpressionRegular}},
		{"case match-unicode", rules.CaseSensitivityChanged{Mode: types.CaseMatchUnicode}},
		{"set DOTALL off", rules.ModifierToggled{Modifier: types.ModifierDotAll, Value: false}},
		{"set multiline on", rules.ModifierToggled{Modifier: types.ModifierMultiline, Value: true}},
		{"set canon_eq yes", rules.ModifierToggled{Modifier: types.ModifierCanonicalEquivalence, Value: true}},
		{"range on", rules.TokenRangeToggled{Enabled: true}},
		{"range false", rules.TokenRangeToggled{Enabled: false}},
		{"from 3", rules.TokenBoundChanged{Bound: types.BoundFrom, Value: 3}},
		{"to 250", rules.TokenBoundChanged{Bound: types.BoundTo, Value: 250}},
		{"to -4", rules.TokenBoundChanged{Bound: types.BoundTo, Value: -4}},
		{"from 99999999999999999999999", rules.TokenBoundChanged{Bound: types.BoundFrom, Value: 99}},
		{"from -99999999999999999999999", rules.TokenBoundChanged{Bound: types.BoundFrom, Value: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := rules.ParseEvent(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEvent_Errors(t *testing.T) {
	for _, line := range []string{
		"",
		"explode now",
		"type glob",
		"case sometimes",
		"set dotall",
		"set global on",
		"set dotall maybe",
		"range sometimes",
		"from three",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := rules.ParseEvent(line)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestApply(t *testing.T) {
	t.Run("sequence_keeps_invariants", func(t *testing.T) {
		d := types.DefaultDraft()
		events := []rules.Event{
			rules.PatternChanged{Text: "foo"},
			rules.CaseSensitivityChanged{Mode: types.CaseIgnore},
			rules.ModifierToggled{Modifier: types.ModifierDotAll, Value: false},
			rules.ModifierToggled{Modifier: types.ModifierMultiline, Value: true},
			rules.TokenRangeToggled{Enabled: true},
			rules.TokenBoundChanged{Bound: types.BoundTo, Value: 120},
			rules.ExpressionTypeChanged{Type: types.ExpressionLiteral},
		}

		var err error
		for _, ev := range events {
			d, err = rules.Apply(d, ev)
			require.NoError(t, err, ev.Name())
		}

		assert.Equal(t, "foo", d.Pattern)
		assert.Equal(t, types.TokenRange{Enabled: true, From: 0, To: 99}, d.TokenRange)
		assert.False(t, d.Multiline)
		assert.False(t, d.DotAll)
	})

	t.Run("rejected_event_returns_input", func(t *testing.T) {
		d := types.DefaultDraft()
		next, err := rules.Apply(d, rules.ModifierToggled{Modifier: types.ModifierDotAll, Value: false})

		assert.True(t, errors.IsErrorCode(err, errors.ErrModifierLocked))
		assert.Equal(t, d, next)
	})

	t.Run("nil_event", func(t *testing.T) {
		_, err := rules.Apply(types.DefaultDraft(), nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestParseSwitch(t *testing.T) {
	for in, want := range map[string]bool{
		"on": true, "ON": true, "yes": true, "y": true, "true": true, "1": true,
		"off": false, "no": false, "n": false, "false": false, "0": false,
	} {
		got, err := rules.ParseSwitch(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
