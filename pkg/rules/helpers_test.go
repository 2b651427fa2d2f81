package rules_test

import (
	"github.com/arthur-debert/tokenrule/pkg/types"
)

func draftWith(pattern string, t types.ExpressionType) types.Draft {
	d := types.DefaultDraft()
	d.Pattern = pattern
	d.ExpressionType = t
	return d
}
