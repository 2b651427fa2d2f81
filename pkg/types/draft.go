package types

import (
	"strings"

	"github.com/arthur-debert/tokenrule/pkg/errors"
)

// ExpressionType selects how the pattern is interpreted
type ExpressionType string

const (
	// ExpressionRegular treats the pattern as a regular expression
	ExpressionRegular ExpressionType = "regular"

	// ExpressionLiteral treats the pattern as literal text
	ExpressionLiteral ExpressionType = "literal"
)

// Valid reports whether t is a known expression type
func (t ExpressionType) Valid() bool {
	return t == ExpressionRegular || t == ExpressionLiteral
}

// ParseExpressionType converts user input into an ExpressionType
func ParseExpressionType(s string) (ExpressionType, error) {
	t := ExpressionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown expression type %q", s).
			WithDetail("allowed", []string{string(ExpressionRegular), string(ExpressionLiteral)})
	}
	return t, nil
}

// CaseSensitivity controls case handling when the rule is applied
type CaseSensitivity string

const (
	CaseMatch        CaseSensitivity = "match"
	CaseIgnore       CaseSensitivity = "ignore"
	CaseMatchUnicode CaseSensitivity = "match-unicode"
)

var caseLabels = map[CaseSensitivity]string{
	CaseMatch:        "Match case",
	CaseIgnore:       "Ignore case",
	CaseMatchUnicode: "Match unicode (ignore case)",
}

// CaseSensitivities lists the modes in display order
func CaseSensitivities() []CaseSensitivity {
	return []CaseSensitivity{CaseMatch, CaseIgnore, CaseMatchUnicode}
}

// Valid reports whether c is a known mode
func (c CaseSensitivity) Valid() bool {
	_, ok := caseLabels[c]
	return ok
}

// Label returns the human readable name of the mode
func (c CaseSensitivity) Label() string {
	if label, ok := caseLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCaseSensitivity converts user input into a CaseSensitivity.
// Underscores are accepted in place of the dash in match-unicode.
func ParseCaseSensitivity(s string) (CaseSensitivity, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	c := CaseSensitivity(normalized)
	if !c.Valid() {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown case sensitivity %q", s)
	}
	return c, nil
}

// Modifier names one of the four boolean regex behaviour flags
type Modifier string

const (
	ModifierCanonicalEquivalence Modifier = "canonicalEquivalence"
	ModifierDotAll               Modifier = "dotAll"
	ModifierMultiline            Modifier = "multiline"
	ModifierUnixLines            Modifier = "unixLines"
)

var modifierMnemonics = map[Modifier]string{
	ModifierCanonicalEquivalence: "CANON_EQ",
	ModifierDotAll:               "DOTALL",
	ModifierMultiline:            "MULTILINE",
	ModifierUnixLines:            "UNIX_LINES",
}

var modifierAliases = map[string]Modifier{
	"canonicalequivalence":  ModifierCanonicalEquivalence,
	"canonical_equivalence": ModifierCanonicalEquivalence,
	"canon_eq":              ModifierCanonicalEquivalence,
	"canoneq":               ModifierCanonicalEquivalence,
	"dotall":                ModifierDotAll,
	"dot_all":               ModifierDotAll,
	"multiline":             ModifierMultiline,
	"unixlines":             ModifierUnixLines,
	"unix_lines":            ModifierUnixLines,
}

// Modifiers returns all modifiers in display order
func Modifiers() []Modifier {
	return []Modifier{
		ModifierCanonicalEquivalence,
		ModifierDotAll,
		ModifierMultiline,
		ModifierUnixLines,
	}
}

// Mnemonic returns the flag constant name, e.g. DOTALL
func (m Modifier) Mnemonic() string {
	return modifierMnemonics[m]
}

// ParseModifier accepts the camelCase name, the snake_case name or the
// flag mnemonic, case-insensitively.
func ParseModifier(s string) (Modifier, error) {
	if m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown modifier %q", s)
}

// TokenBound selects one end of a token range
type TokenBound string

const (
	BoundFrom TokenBound = "from"
	BoundTo   TokenBound = "to"
)

// Token range limits, inclusive
const (
	MinTokenBound = 0
	MaxTokenBound = 99
)

// TokenRange restricts where within a token sequence a pattern may apply
type TokenRange struct {
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled" koanf:"enabled"`
	From    int  `toml:"from" yaml:"from" json:"from" koanf:"from"`
	To      int  `toml:"to" yaml:"to" json:"to" koanf:"to"`
}

// Draft is the in-progress rule configuration held during editing.
// Use the transition functions in pkg/rules to change it.
type Draft struct {
	Pattern              string
	ExpressionType       ExpressionType
	CaseSensitivity      CaseSensitivity
	TokenRange           TokenRange
	CanonicalEquivalence bool
	DotAll               bool
	Multiline            bool
	UnixLines            bool

	// ErrorMessage is empty unless the last commit attempt failed
	ErrorMessage string
}

// DefaultDraft returns a draft with the editor's initial values
func DefaultDraft() Draft {
	return Draft{
		Pattern:         "",
		ExpressionType:  ExpressionRegular,
		CaseSensitivity: CaseMatch,
		TokenRange: TokenRange{
			Enabled: false,
			From:    0,
			To:      0,
		},
		CanonicalEquivalence: false,
		DotAll:               true,
		Multiline:            false,
		UnixLines:            false,
	}
}

// HasError reports whether the last commit attempt failed
func (d Draft) HasError() bool {
	return d.ErrorMessage != ""
}

// Modifier returns the current value of the named modifier
func (d Draft) Modifier(m Modifier) bool {
	switch m {
	case ModifierCanonicalEquivalence:
		return d.CanonicalEquivalence
	case ModifierDotAll:
		return d.DotAll
	case ModifierMultiline:
		return d.Multiline
	case ModifierUnixLines:
		return d.UnixLines
	}
	return false
}
