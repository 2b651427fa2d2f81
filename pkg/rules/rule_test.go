// Test Type: Unit Test
// Description: Tests for committed rule snapshots and restoring stored records

package rules_test

import (
	"testing"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/testutil"
	"github.com/arthur-debert/tokenrule/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord() types.RuleRecord {
	return types.RuleRecord{
		NodeID:          "node-1",
		Pattern:         "[a-z]+",
		ExpressionType:  types.ExpressionRegular,
		CaseSensitivity: types.CaseIgnore,
		TokenRange:      types.TokenRange{Enabled: true, From: 2, To: 5},
		Multiline:       true,
		Engine:          string(rules.EngineECMAScript),
		IsValid:         true,
	}
}

func TestValidatedRule_ZeroValue(t *testing.T) {
	var rule rules.ValidatedRule

	assert.True(t, rule.IsZero())
	assert.False(t, rule.IsValid())
	assert.Empty(t, rule.Flags())
	assert.False(t, rule.Record().IsValid)
}

func TestValidatedRule_Flags(t *testing.T) {
	d := draftWith("abc", types.ExpressionRegular)
	d.Multiline = true
	d.UnixLines = true

	rule := testutil.CommitRule(t, "node-1", d)

	assert.Equal(t, []string{"DOTALL", "MULTILINE", "UNIX_LINES"}, rule.Flags())
	assert.True(t, rule.Modifier(types.ModifierUnixLines))
	assert.False(t, rule.Modifier(types.ModifierCanonicalEquivalence))
}

func TestValidatedRule_Record(t *testing.T) {
	rec := storedRecord()
	rule, err := rules.Restore(rec)
	require.NoError(t, err)

	assert.Equal(t, rec, rule.Record())
	assert.Equal(t, rec.Draft(), rule.Record().Draft())
}

func TestRestore(t *testing.T) {
	t.Run("valid_record", func(t *testing.T) {
		rule, err := rules.Restore(storedRecord())
		require.NoError(t, err)
		assert.True(t, rule.IsValid())
		assert.Equal(t, "node-1", rule.NodeID())
		assert.Equal(t, rules.EngineECMAScript, rule.Engine())
		assert.True(t, rule.Multiline())
	})

	t.Run("blank_engine_uses_default", func(t *testing.T) {
		rec := storedRecord()
		rec.Engine = ""
		rule, err := rules.Restore(rec)
		require.NoError(t, err)
		assert.Equal(t, rules.DefaultEngine, rule.Engine())
	})

	tests := []struct {
		name   string
		mutate func(*types.RuleRecord)
		code   errors.ErrorCode
	}{
		{"blank_node_id", func(r *types.RuleRecord) { r.NodeID = " " }, errors.ErrInvalidRecord},
		{"not_marked_valid", func(r *types.RuleRecord) { r.IsValid = false }, errors.ErrInvalidRecord},
		{"unknown_expression_type", func(r *types.RuleRecord) { r.ExpressionType = "glob" }, errors.ErrInvalidRecord},
		{"unknown_case_sensitivity", func(r *types.RuleRecord) { r.CaseSensitivity = "shout" }, errors.ErrInvalidRecord},
		{"unknown_engine", func(r *types.RuleRecord) { r.Engine = "perl" }, errors.ErrInvalidRecord},
		{"from_above_range", func(r *types.RuleRecord) { r.TokenRange.From = 100 }, errors.ErrInvalidRecord},
		{"to_below_range", func(r *types.RuleRecord) { r.TokenRange.To = -1 }, errors.ErrInvalidRecord},
		{"literal_with_modifier", func(r *types.RuleRecord) {
			r.ExpressionType = types.ExpressionLiteral
		}, errors.ErrInvalidRecord},
		{"case_match_without_dot_all", func(r *types.RuleRecord) {
			r.CaseSensitivity = types.CaseMatch
		}, errors.ErrInvalidRecord},
		{"empty_pattern", func(r *types.RuleRecord) { r.Pattern = "  " }, errors.ErrEmptyPattern},
		{"invalid_pattern", func(r *types.RuleRecord) { r.Pattern = "(unclosed" }, errors.ErrInvalidPattern},
		{"pattern_invalid_for_engine", func(r *types.RuleRecord) { r.Pattern = "(?i)abc" }, errors.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := storedRecord()
			tt.mutate(&rec)

			rule, err := rules.Restore(rec)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.True(t, rule.IsZero())
		})
	}

	t.Run("same_pattern_valid_for_re2", func(t *testing.T) {
		rec := storedRecord()
		rec.Pattern = "(?i)abc"
		rec.Engine = string(rules.EngineRE2)
		_, err := rules.Restore(rec)
		assert.NoError(t, err)
	})

	t.Run("literal_record", func(t *testing.T) {
		rec := storedRecord()
		rec.ExpressionType = types.ExpressionLiteral
		rec.Multiline = false
		rec.Pattern = "(unclosed"
		rule, err := rules.Restore(rec)
		require.NoError(t, err)
		assert.Empty(t, rule.Flags())
	})
}

func TestFuncAdapters(t *testing.T) {
	var persisted rules.ValidatedRule
	hidden := 0
	var sink rules.PersistenceSink = rules.PersistFunc(func(r rules.ValidatedRule) error {
		persisted = r
		return nil
	})
	var hider rules.VisibilityController = rules.HideFunc(func() { hidden++ })

	d := draftWith("abc", types.ExpressionRegular)
	rule, err := rules.ValidateAndCommit(&d, "node-1", sink, hider)
	require.NoError(t, err)

	assert.Equal(t, rule, persisted)
	assert.Equal(t, 1, hidden)
}
