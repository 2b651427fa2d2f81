package topics

import (
	"path"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderer formats a topic for the terminal
type Renderer interface {
	Render(topic *Topic) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(topic *Topic) string

// Render calls f(topic)
func (f RendererFunc) Render(topic *Topic) string { return f(topic) }

// Plain prints topic content unchanged
var Plain Renderer = RendererFunc(func(topic *Topic) string { return topic.Content })

// Markdown renders .md topics through glamour. Other topics, and any topic
// glamour fails on, are printed as plain text.
type Markdown struct {
	style string
	width int

	once sync.Once
	term *glamour.TermRenderer
	err  error
}

// NewMarkdown creates a markdown renderer. An empty style picks dark or
// light from the terminal; width 0 keeps glamour's default wrap.
func NewMarkdown(style string, width int) *Markdown {
	return &Markdown{style: style, width: width}
}

// Render implements Renderer
func (m *Markdown) Render(topic *Topic) string {
	if path.Ext(topic.FilePath) != ".md" {
		return topic.Content
	}
	m.once.Do(m.init)
	if m.err != nil {
		return topic.Content
	}
	out, err := m.term.Render(topic.Content)
	if err != nil {
		return topic.Content
	}
	return out
}

func (m *Markdown) init() {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if m.style != "" {
		opts[0] = glamour.WithStylePath(m.style)
	}
	if m.width > 0 {
		opts = append(opts, glamour.WithWordWrap(m.width))
	}
	m.term, m.err = glamour.NewTermRenderer(opts...)
}
