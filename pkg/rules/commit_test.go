// Test Type: Unit Test
// Description: Tests for validating and committing drafts to collaborators

package rules_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/testutil"
	"github.com/arthur-debert/tokenrule/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndCommit_Examples(t *testing.T) {
	t.Run("A_regular_pattern_commits", func(t *testing.T) {
		sink, hider := &testutil.MockSink{}, &testutil.MockHider{}
		d := draftWith("[A-Z]+", types.ExpressionRegular)

		rule, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)
		require.NoError(t, err)

		assert.Equal(t, "[A-Z]+", rule.Pattern())
		assert.True(t, rule.IsValid())
		assert.Equal(t, "node-1", rule.NodeID())
		require.Len(t, sink.Rules(), 1)
		assert.Equal(t, rule, sink.Rules()[0])
		assert.Equal(t, 1, hider.Hidden())
		assert.Empty(t, d.ErrorMessage)
	})

	t.Run("B_empty_pattern_fails", func(t *testing.T) {
		sink, hider := &testutil.MockSink{}, &testutil.MockHider{}
		d := draftWith("", types.ExpressionRegular)

		rule, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)

		assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyPattern))
		assert.True(t, rule.IsZero())
		assert.Empty(t, sink.Rules())
		assert.Zero(t, hider.Hidden())
		assert.Equal(t, errors.MsgInvalidExpression, d.ErrorMessage)
	})

	t.Run("C_unclosed_group_fails", func(t *testing.T) {
		sink, hider := &testutil.MockSink{}, &testutil.MockHider{}
		d := draftWith("(unclosed", types.ExpressionRegular)

		_, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)

		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
		assert.Equal(t, errors.MsgInvalidExpression, d.ErrorMessage)
		assert.Empty(t, sink.Rules())
		assert.Zero(t, hider.Hidden())
	})

	t.Run("D_literal_unclosed_group_commits", func(t *testing.T) {
		sink, hider := &testutil.MockSink{}, &testutil.MockHider{}
		d := draftWith("(unclosed", types.ExpressionLiteral)

		rule, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)
		require.NoError(t, err)

		assert.Equal(t, "(unclosed", rule.Pattern())
		assert.Equal(t, types.ExpressionLiteral, rule.ExpressionType())
		assert.Len(t, sink.Rules(), 1)
	})
}

func TestValidateAndCommit_InvalidPatternsNeverPersist(t *testing.T) {
	for _, p := range invalidPatterns {
		sink, hider := &testutil.MockSink{}, &testutil.MockHider{}
		d := draftWith(p, types.ExpressionRegular)
		before := d

		_, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)

		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern), p)
		assert.Equal(t, errors.MsgInvalidExpression, d.ErrorMessage)
		assert.Empty(t, sink.Rules(), p)
		assert.Zero(t, hider.Hidden(), p)

		// Only the error message changed
		d.ErrorMessage = ""
		assert.Equal(t, before, d)
	}
}

func TestValidateAndCommit_Snapshot(t *testing.T) {
	d := types.Draft{
		Pattern:         "  spaced  ",
		ExpressionType:  types.ExpressionRegular,
		CaseSensitivity: types.CaseIgnore,
		TokenRange:      types.TokenRange{Enabled: true, From: 4, To: 2},
		Multiline:       true,
		ErrorMessage:    "previous failure",
	}

	rule, err := rules.ValidateAndCommit(&d, "node-7", &testutil.MockSink{}, &testutil.MockHider{})
	require.NoError(t, err)

	assert.Equal(t, "  spaced  ", rule.Pattern(), "pattern is kept as typed")
	assert.Equal(t, types.CaseIgnore, rule.CaseSensitivity())
	assert.Equal(t, types.TokenRange{Enabled: true, From: 4, To: 2}, rule.TokenRange())
	assert.True(t, rule.Multiline())
	assert.False(t, rule.DotAll())
	assert.Empty(t, d.ErrorMessage, "successful commit clears the error")
	assert.Equal(t, rules.DefaultEngine, rule.Engine())
}

func TestValidateAndCommit_SnapshotIsNormalized(t *testing.T) {
	// A draft edited by hand can break the locks; the rule never does
	d := types.Draft{
		Pattern:         "abc",
		ExpressionType:  types.ExpressionRegular,
		CaseSensitivity: types.CaseMatch,
		TokenRange:      types.TokenRange{Enabled: true, From: -4, To: 250},
	}

	rule, err := rules.ValidateAndCommit(&d, "node-1", &testutil.MockSink{}, &testutil.MockHider{}, rules.WithEngine(rules.EngineRE2))
	require.NoError(t, err)

	assert.True(t, rule.DotAll())
	assert.Equal(t, types.TokenRange{Enabled: true, From: 0, To: 99}, rule.TokenRange())
	assert.Equal(t, rules.EngineRE2, rule.Engine())

	restored, err := rules.Restore(rule.Record())
	require.NoError(t, err)
	assert.Equal(t, rule, restored)
}

func TestValidateAndCommit_PersistBeforeHide(t *testing.T) {
	log := &testutil.CallLog{}
	sink := &testutil.MockSink{Log: log}
	hider := &testutil.MockHider{Log: log}
	d := draftWith("abc", types.ExpressionRegular)

	_, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)
	require.NoError(t, err)

	assert.Equal(t, []string{"persist", "hide"}, log.Entries())
}

func TestValidateAndCommit_SinkFailure(t *testing.T) {
	diskFull := stderrors.New("disk full")
	sink := &testutil.MockSink{Err: diskFull}
	hider := &testutil.MockHider{}
	d := draftWith("abc", types.ExpressionRegular)

	rule, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)

	assert.True(t, rule.IsZero(), "no rule is returned when the sink fails")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSinkWrite))
	assert.True(t, stderrors.Is(err, diskFull))
	assert.Zero(t, hider.Hidden())
	assert.NotEmpty(t, d.ErrorMessage)
	assert.Equal(t, "abc", d.Pattern)
}

func TestValidateAndCommit_CallerErrors(t *testing.T) {
	t.Run("missing_node_id", func(t *testing.T) {
		sink := &testutil.MockSink{}
		d := draftWith("abc", types.ExpressionRegular)

		_, err := rules.ValidateAndCommit(&d, "  ", sink, &testutil.MockHider{})

		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingNodeID))
		assert.Empty(t, d.ErrorMessage)
		assert.Empty(t, sink.Rules())
	})

	t.Run("nil_draft", func(t *testing.T) {
		_, err := rules.ValidateAndCommit(nil, "node-1", &testutil.MockSink{}, &testutil.MockHider{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("nil_sink", func(t *testing.T) {
		d := draftWith("abc", types.ExpressionRegular)
		_, err := rules.ValidateAndCommit(&d, "node-1", nil, &testutil.MockHider{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("nil_hider_is_allowed", func(t *testing.T) {
		sink := &testutil.MockSink{}
		d := draftWith("abc", types.ExpressionRegular)
		_, err := rules.ValidateAndCommit(&d, "node-1", sink, nil)
		require.NoError(t, err)
		assert.Len(t, sink.Rules(), 1)
	})
}

func TestValidateAndCommit_Engine(t *testing.T) {
	// Lookahead is valid ECMAScript syntax
	d := draftWith("foo(?=bar)", types.ExpressionRegular)

	_, err := rules.ValidateAndCommit(&d, "node-1", &testutil.MockSink{}, &testutil.MockHider{}, rules.WithEngine(rules.EngineECMAScript))
	assert.NoError(t, err)
}
