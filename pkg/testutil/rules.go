package testutil

import (
	"testing"

	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// CommitRule runs d through a real commit for nodeID and returns the rule
func CommitRule(t *testing.T, nodeID string, d types.Draft) rules.ValidatedRule {
	t.Helper()
	rule, err := rules.ValidateAndCommit(&d, nodeID, &MockSink{}, &MockHider{})
	if err != nil {
		t.Fatalf("failed to commit rule for %s: %v", nodeID, err)
	}
	return rule
}
