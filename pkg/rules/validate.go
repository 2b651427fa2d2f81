package rules

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// Engine selects the regular expression syntax patterns are checked against
type Engine string

const (
	// EngineECMAScript checks patterns with JavaScript regex syntax
	EngineECMAScript Engine = "ecmascript"

	// EngineRE2 checks patterns with RE2 syntax
	EngineRE2 Engine = "re2"
)

// DefaultEngine is used when no engine is configured
const DefaultEngine = EngineECMAScript

// Valid reports whether e is a known engine
func (e Engine) Valid() bool {
	return e == EngineECMAScript || e == EngineRE2
}

// ParseEngine converts a configuration value into an Engine
func ParseEngine(s string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	if e == "" {
		return DefaultEngine, nil
	}
	if !e.Valid() {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown regex engine %q", s)
	}
	return e, nil
}

func (e Engine) options() regexp2.RegexOptions {
	if e == EngineRE2 {
		return regexp2.RE2
	}
	return regexp2.ECMAScript
}

// CheckPattern validates a pattern without committing it. Blank patterns
// fail with EMPTY_PATTERN; regular patterns that do not compile fail with
// INVALID_PATTERN. Literal patterns only need to be non-blank.
func CheckPattern(pattern string, exprType types.ExpressionType, engine Engine) error {
	if strings.TrimSpace(pattern) == "" {
		return errors.New(errors.ErrEmptyPattern, "you must enter an expression")
	}

	if exprType == types.ExpressionLiteral {
		return nil
	}

	if !engine.Valid() {
		engine = DefaultEngine
	}
	if engine == EngineECMAScript {
		if construct, found := unsupportedGroup(pattern); found {
			return errors.New(errors.ErrInvalidPattern, "pattern does not compile").
				WithDetail("pattern", pattern).
				WithDetail("engine", string(engine)).
				WithDetail("cause", "invalid group "+construct)
		}
	}
	if _, err := regexp2.Compile(pattern, engine.options()); err != nil {
		return errors.New(errors.ErrInvalidPattern, "pattern does not compile").
			WithDetail("pattern", pattern).
			WithDetail("engine", string(engine)).
			WithDetail("cause", err.Error())
	}
	return nil
}

// unsupportedGroup finds the first "(?" construct JavaScript rejects but
// regexp2 accepts even in ECMAScript mode: atomic groups, inline options,
// comments, quoted names and conditionals.
func unsupportedGroup(pattern string) (string, bool) {
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(' && strings.HasPrefix(pattern[i+1:], "?"):
			if !ecmaGroup(pattern[i+2:]) {
				return pattern[i:min(len(pattern), i+4)], true
			}
		}
	}
	return "", false
}

// ecmaGroup reports whether rest, the text after "(?", opens a group
// JavaScript knows
func ecmaGroup(rest string) bool {
	for _, prefix := range []string{":", "=", "!", "<=", "<!"} {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	if !strings.HasPrefix(rest, "<") {
		return false
	}
	name, _, ok := strings.Cut(rest[1:], ">")
	return ok && groupName(name)
}

func groupName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r == '$', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
