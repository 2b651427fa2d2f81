package datastore

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/arthur-debert/tokenrule/pkg/rules"
)

// Diff returns a line diff between two rules rendered as TOML, with
// "- " and "+ " marking removed and added lines. Equal rules give "".
func Diff(old, new rules.ValidatedRule) string {
	before, _ := Encode(old, FormatTOML)
	after, _ := Encode(new, FormatTOML)
	if string(before) == string(after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
