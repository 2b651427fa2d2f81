package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// Renderer defines the interface for rendering rules and drafts
type Renderer interface {
	RenderDraft(nodeID string, d types.Draft) string
	RenderRule(rule rules.ValidatedRule) string
	RenderRuleTable(rules []rules.ValidatedRule) string
	RenderDiff(diff string) string
	RenderError(err error) string
}

// NewRenderer returns a TerminalRenderer when color is enabled and a
// PlainRenderer otherwise
func NewRenderer(color bool) Renderer {
	if color {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderDraft renders the editor state, marking locked modifiers
func (r *TerminalRenderer) RenderDraft(nodeID string, d types.Draft) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Rule for "+nodeID) + "\n")

	pattern := PatternStyle.Render(d.Pattern)
	if d.Pattern == "" {
		pattern = MutedStyle.Render("(empty)")
	}
	row(&b, "Pattern", pattern)
	row(&b, "Expression type", NormalStyle.Render(string(d.ExpressionType)))
	row(&b, "Case", NormalStyle.Render(d.CaseSensitivity.Label()))
	row(&b, "Token range", NormalStyle.Render(tokenRangeText(d.TokenRange)))

	for _, m := range types.Modifiers() {
		value := MutedStyle.Render("off")
		if d.Modifier(m) {
			value = FlagStyle.Render("on")
		}
		if reason := rules.LockReason(d, m); reason != "" {
			value += " " + LockIndicator() + " " + RenderTemplate("[locked]locked by {{reason}}[/locked]", map[string]string{"reason": reason})
		}
		row(&b, m.Mnemonic(), value)
	}

	if d.HasError() {
		b.WriteString(ErrorIndicator() + " " + ErrorStyle.Render(d.ErrorMessage) + "\n")
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderRule renders a stored rule
func (r *TerminalRenderer) RenderRule(rule rules.ValidatedRule) string {
	var b strings.Builder
	b.WriteString(SuccessIndicator() + " " + TitleStyle.Render(rule.NodeID()) + "\n")
	row(&b, "Pattern", PatternStyle.Render(rule.Pattern()))
	row(&b, "Expression type", NormalStyle.Render(string(rule.ExpressionType())))
	row(&b, "Case", NormalStyle.Render(rule.CaseSensitivity().Label()))
	row(&b, "Token range", NormalStyle.Render(tokenRangeText(rule.TokenRange())))
	row(&b, "Flags", FlagStyle.Render(flagsText(rule)))
	return strings.TrimRight(b.String(), "\n")
}

// RenderRuleTable renders rules as a table, one row per node
func (r *TerminalRenderer) RenderRuleTable(list []rules.ValidatedRule) string {
	if len(list) == 0 {
		return Render("[muted]No rules stored[/muted]")
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(ruleTableData(list)).Srender()
	if err != nil {
		return r.RenderError(err)
	}
	return strings.TrimRight(out, "\n")
}

// RenderDiff colors added and removed lines
func (r *TerminalRenderer) RenderDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "+ "):
			b.WriteString(DiffAddStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "- "):
			b.WriteString(DiffRemoveStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		default:
			b.WriteString(MutedStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			errors.UserMessage(err))
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderDraft renders the editor state as plain text
func (r *PlainRenderer) RenderDraft(nodeID string, d types.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rule for %s\n", nodeID)
	fmt.Fprintf(&b, "  %-17s%s\n", "Pattern", d.Pattern)
	fmt.Fprintf(&b, "  %-17s%s\n", "Expression type", d.ExpressionType)
	fmt.Fprintf(&b, "  %-17s%s\n", "Case", d.CaseSensitivity.Label())
	fmt.Fprintf(&b, "  %-17s%s\n", "Token range", tokenRangeText(d.TokenRange))
	for _, m := range types.Modifiers() {
		value := "off"
		if d.Modifier(m) {
			value = "on"
		}
		if reason := rules.LockReason(d, m); reason != "" {
			value += " (locked by " + reason + ")"
		}
		fmt.Fprintf(&b, "  %-17s%s\n", m.Mnemonic(), value)
	}
	if d.HasError() {
		fmt.Fprintf(&b, "Error: %s\n", d.ErrorMessage)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRule renders a stored rule as plain text
func (r *PlainRenderer) RenderRule(rule rules.ValidatedRule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rule.NodeID())
	fmt.Fprintf(&b, "  %-17s%s\n", "Pattern", rule.Pattern())
	fmt.Fprintf(&b, "  %-17s%s\n", "Expression type", rule.ExpressionType())
	fmt.Fprintf(&b, "  %-17s%s\n", "Case", rule.CaseSensitivity().Label())
	fmt.Fprintf(&b, "  %-17s%s\n", "Token range", tokenRangeText(rule.TokenRange()))
	fmt.Fprintf(&b, "  %-17s%s\n", "Flags", flagsText(rule))
	return strings.TrimRight(b.String(), "\n")
}

// RenderRuleTable renders rules as tab separated lines
func (r *PlainRenderer) RenderRuleTable(list []rules.ValidatedRule) string {
	if len(list) == 0 {
		return "No rules stored"
	}
	var b strings.Builder
	for _, line := range ruleTableData(list) {
		b.WriteString(strings.Join(line, "\t") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDiff returns the diff unchanged
func (r *PlainRenderer) RenderDiff(diff string) string {
	return strings.TrimRight(diff, "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", errors.UserMessage(err))
}

func row(b *strings.Builder, label, value string) {
	b.WriteString("  " + LabelStyle.Render(label) + value + "\n")
}

func tokenRangeText(tr types.TokenRange) string {
	if !tr.Enabled {
		return "off"
	}
	return fmt.Sprintf("%d to %d", tr.From, tr.To)
}

func flagsText(rule rules.ValidatedRule) string {
	flags := rule.Flags()
	if len(flags) == 0 {
		return "none"
	}
	return strings.Join(flags, ", ")
}

func ruleTableData(list []rules.ValidatedRule) pterm.TableData {
	data := pterm.TableData{{"Node", "Pattern", "Type", "Case", "Tokens", "Flags"}}
	for _, rule := range list {
		data = append(data, []string{
			rule.NodeID(),
			rule.Pattern(),
			string(rule.ExpressionType()),
			string(rule.CaseSensitivity()),
			tokenRangeText(rule.TokenRange()),
			flagsText(rule),
		})
	}
	return data
}
