// Package rules holds the editing and commit logic for a single
// token-matching rule.
//
// # Draft transitions
//
// A types.Draft is changed only through the pure transition functions in
// this package (SetPattern, SetExpressionType, SetCaseSensitivity,
// SetModifier, SetTokenRangeEnabled, SetTokenRangeBound) or through the
// equivalent Event values passed to Apply. Every transition re-applies the
// draft invariants before returning:
//
//   - literal expressions force canonicalEquivalence, dotAll, multiline and
//     unixLines to false, and lock them
//   - case-sensitivity "match" on a regular expression forces dotAll to true
//     and locks it
//   - token range bounds are clamped into [0,99]
//
// The literal lock wins when both apply. Locked modifiers reject edits with
// a MODIFIER_LOCKED error and the draft is returned unchanged.
//
// # Commit
//
// ValidateAndCommit checks the pattern (blank patterns always fail; regular
// patterns must compile with the configured regexp2 engine), snapshots the
// draft into a ValidatedRule, hands it to the PersistenceSink and asks
// the VisibilityController to hide the editor. On a validation failure the
// draft's ErrorMessage is set and neither collaborator is called.
//
// Configurator wraps a draft, its collaborators and a logger into one
// editing session.
package rules
