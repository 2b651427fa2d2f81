package style

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/testutil"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

func TestTextStyles(t *testing.T) {
	// Styling never drops the text itself
	tests := []struct {
		name     string
		text     string
		style    func(string) string
		contains string
	}{
		{
			name:     "bold text",
			text:     "Hello World",
			style:    Bold,
			contains: "Hello World",
		},
		{
			name:     "italic text",
			text:     "Hello World",
			style:    Italic,
			contains: "Hello World",
		},
		{
			name:     "underline text",
			text:     "Hello World",
			style:    Underline,
			contains: "Hello World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style(tt.text)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("Expected output to contain %q, got %q", tt.contains, result)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		level    int
		expected string
	}{
		{
			name:     "no indent",
			text:     "Hello",
			level:    0,
			expected: "Hello",
		},
		{
			name:     "single indent",
			text:     "Hello",
			level:    1,
			expected: "  Hello",
		},
		{
			name:     "double indent",
			text:     "Hello",
			level:    2,
			expected: "    Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Indent(tt.text, tt.level)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func testDraft() types.Draft {
	d := types.DefaultDraft()
	d.Pattern = "[A-Z]+"
	d.Multiline = true
	d.TokenRange = types.TokenRange{Enabled: true, From: 2, To: 5}
	return d
}

func testRule(t *testing.T) rules.ValidatedRule {
	return testutil.CommitRule(t, "node-1", testDraft())
}

func TestRenderers(t *testing.T) {
	SetColor(false)
	defer SetColor(false)

	renderers := map[string]Renderer{
		"terminal": NewTerminalRenderer(),
		"plain":    NewPlainRenderer(),
	}

	for name, renderer := range renderers {
		t.Run(name+"/RenderDraft", func(t *testing.T) {
			result := renderer.RenderDraft("node-1", testDraft())
			for _, want := range []string{"node-1", "[A-Z]+", "regular", "Match case", "2 to 5", "DOTALL", "locked by case-match", "MULTILINE"} {
				if !strings.Contains(result, want) {
					t.Errorf("Expected draft output to contain %q, got:\n%s", want, result)
				}
			}
			if strings.Contains(result, "Error") {
				t.Error("Draft without error should not show one")
			}
		})

		t.Run(name+"/RenderDraft literal with error", func(t *testing.T) {
			d := testDraft()
			d.ExpressionType = types.ExpressionLiteral
			d.Multiline = false
			d.DotAll = false
			d.ErrorMessage = errors.MsgInvalidExpression
			result := renderer.RenderDraft("node-1", d)
			if strings.Count(result, "locked by literal") != 4 {
				t.Errorf("Expected all four modifiers locked, got:\n%s", result)
			}
			if !strings.Contains(result, errors.MsgInvalidExpression) {
				t.Error("Expected error message in output")
			}
		})

		t.Run(name+"/RenderRule", func(t *testing.T) {
			result := renderer.RenderRule(testRule(t))
			for _, want := range []string{"node-1", "[A-Z]+", "DOTALL, MULTILINE"} {
				if !strings.Contains(result, want) {
					t.Errorf("Expected rule output to contain %q, got:\n%s", want, result)
				}
			}
		})

		t.Run(name+"/RenderRuleTable", func(t *testing.T) {
			result := renderer.RenderRuleTable([]rules.ValidatedRule{testRule(t)})
			for _, want := range []string{"Node", "Pattern", "node-1", "[A-Z]+", "2 to 5"} {
				if !strings.Contains(result, want) {
					t.Errorf("Expected table to contain %q, got:\n%s", want, result)
				}
			}
		})

		t.Run(name+"/RenderRuleTable empty", func(t *testing.T) {
			if result := renderer.RenderRuleTable(nil); !strings.Contains(result, "No rules stored") {
				t.Errorf("Expected empty message, got %q", result)
			}
		})

		t.Run(name+"/RenderDiff", func(t *testing.T) {
			result := renderer.RenderDiff("  node_id = 'a'\n- pattern = 'x'\n+ pattern = 'y'\n")
			if !strings.Contains(result, "- pattern = 'x'") || !strings.Contains(result, "+ pattern = 'y'") {
				t.Errorf("Expected diff lines, got:\n%s", result)
			}
		})

		t.Run(name+"/RenderError", func(t *testing.T) {
			if renderer.RenderError(nil) != "" {
				t.Error("Expected empty output for nil error")
			}
			err := errors.New(errors.ErrInvalidPattern, "compile failed")
			if result := renderer.RenderError(err); !strings.Contains(result, errors.MsgInvalidExpression) {
				t.Errorf("Expected user message, got %q", result)
			}
			if result := renderer.RenderError(stderrors.New("Something went wrong")); !strings.Contains(result, "Something went wrong") {
				t.Errorf("Expected raw message, got %q", result)
			}
		})
	}
}

func TestNewRenderer(t *testing.T) {
	if _, ok := NewRenderer(true).(*TerminalRenderer); !ok {
		t.Error("Expected terminal renderer when color is enabled")
	}
	if _, ok := NewRenderer(false).(*PlainRenderer); !ok {
		t.Error("Expected plain renderer when color is disabled")
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(nil) {
		t.Error("NO_COLOR must disable color")
	}
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}
}

func TestMarkup(t *testing.T) {
	SetColor(false)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"known tags", "[pattern]abc[/pattern] is [locked]locked[/locked]", "abc is locked"},
		{"nested tags", "[bold]a [code]b[/code] c[/bold]", "a b c"},
		{"same tag nested", "[bold]a [bold]b[/bold][/bold]!", "a b!"},
		{"unknown tag kept", "[A-Z]+ and [x]y[/x]", "[A-Z]+ and [x]y[/x]"},
		{"unclosed tag kept", "[flag]DOTALL", "[flag]DOTALL"},
		{"empty brackets", "[] []]", "[] []]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	result := RenderTemplate("rule {{node}} saved by {{who}}", map[string]string{"node": "n1", "who": "[muted]me[/muted]"})
	if result != "rule n1 saved by me" {
		t.Errorf("Expected substituted template, got %q", result)
	}

	custom := Markup{"hi": MutedStyle}
	if got := custom.Render("[hi]x[/hi] [bold]y[/bold]"); got != "x [bold]y[/bold]" {
		t.Errorf("custom markup only knows its own tags, got %q", got)
	}
}
