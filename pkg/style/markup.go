package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Markup maps tag names to styles. Render replaces each [tag]text[/tag]
// span with text rendered in the tag's style.
type Markup map[string]lipgloss.Style

// DefaultMarkup holds the tags used by rule output
var DefaultMarkup = Markup{
	"title":   TitleStyle,
	"success": SuccessStyle,
	"error":   ErrorStyle,
	"warning": WarningStyle,
	"muted":   MutedStyle,
	"code":    CodeStyle,
	"bold":    lipgloss.NewStyle().Bold(true),
	"pattern": PatternStyle,
	"flag":    FlagStyle,
	"locked":  LockedStyle,
}

// Render styles every span in text. Spans nest; unknown tags and tags
// without a closing tag are kept as typed.
func (m Markup) Render(text string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(text, '[')
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		text = text[i:]

		tag, inner, rest, ok := m.span(text)
		if !ok {
			b.WriteByte('[')
			text = text[1:]
			continue
		}
		b.WriteString(m[tag].Render(m.Render(inner)))
		text = rest
	}
}

// span splits text, which starts with '[', into a known tag, the content
// up to its matching close tag and whatever follows it
func (m Markup) span(text string) (tag, inner, rest string, ok bool) {
	end := strings.IndexByte(text, ']')
	if end < 0 {
		return "", "", "", false
	}
	tag = text[1:end]
	if _, known := m[tag]; !known {
		return "", "", "", false
	}

	open, closing := "["+tag+"]", "[/"+tag+"]"
	depth := 1
	for i := end + 1; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], closing):
			if depth--; depth == 0 {
				return tag, text[end+1 : i], text[i+len(closing):], true
			}
			i += len(closing)
		case strings.HasPrefix(text[i:], open):
			depth++
			i += len(open)
		default:
			i++
		}
	}
	return "", "", "", false
}

// Template fills {{name}} placeholders from vars, then renders the markup
func (m Markup) Template(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return m.Render(strings.NewReplacer(pairs...).Replace(tmpl))
}

// Render styles text with DefaultMarkup
func Render(text string) string {
	return DefaultMarkup.Render(text)
}

// RenderTemplate fills and styles tmpl with DefaultMarkup
func RenderTemplate(tmpl string, vars map[string]string) string {
	return DefaultMarkup.Template(tmpl, vars)
}
