// Package detailview is the overlay that shows the raw JSON of one entry.
package detailview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/msgs"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/styles"
	"github.com/germanamz/modelcards/pkg/detail"
	"github.com/germanamz/modelcards/pkg/session"
)

// overlay border + padding, title and help lines
const (
	frameWidth  = 4
	frameHeight = 4
)

var closeKey = key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close"))

// Renderer turns markdown into terminal output. *glamour.TermRenderer
// satisfies it.
type Renderer interface {
	Render(in string) (string, error)
}

// Markdown builds glamour renderers with a style fixed up front. The
// background must be detected before bubbletea starts: glamour.WithAutoStyle
// queries the terminal (OSC 11), which races with bubbletea's input reader
// and leaks escape sequences into the text inputs.
type Markdown struct {
	dark bool

	width    int
	renderer Renderer
}

// NewMarkdown returns a renderer source for a dark or light background.
func NewMarkdown(dark bool) *Markdown {
	return &Markdown{dark: dark}
}

// Renderer returns a renderer wrapping at width, reusing the last one when
// the width is unchanged. It is only called from the bubbletea update loop.
func (md *Markdown) Renderer(width int) Renderer {
	if width <= 0 {
		width = 100
	}
	if md.renderer != nil && width == md.width {
		return md.renderer
	}

	style := glamourstyles.LightStyleConfig
	if md.dark {
		style = glamourstyles.DarkStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	md.renderer = r
	md.width = width

	return r
}

// Model is a scrollable detail overlay.
type Model struct {
	viewport viewport.Model
	renderer Renderer
	detail   detail.Detail
	width    int
	height   int
}

// New returns a closed overlay. A nil renderer shows the body as plain text.
func New(r Renderer) Model {
	return Model{viewport: viewport.New(0, 0), renderer: r}
}

// SetRenderer replaces the markdown renderer, e.g. after a resize.
func (m *Model) SetRenderer(r Renderer) {
	m.renderer = r
	m.refresh()
}

// SetSize sets the full area the overlay may cover.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-frameWidth, 1)
	m.viewport.Height = max(height-frameHeight-2, 1)
	m.refresh()
}

// Show replaces the presented detail and scrolls back to the top.
func (m *Model) Show(d detail.Detail) {
	if d == m.detail {
		return
	}
	m.detail = d
	m.refresh()
	m.viewport.GotoTop()
}

// Open reports whether a detail is being shown.
func (m Model) Open() bool {
	return m.detail.Open
}

func (m *Model) refresh() {
	if !m.detail.Open {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.render(m.detail.Body))
}

func (m Model) render(body string) string {
	if m.renderer == nil {
		return body
	}
	out, err := m.renderer.Render("```json\n" + body + "\n```\n")
	if err != nil {
		return body
	}
	return strings.Trim(out, "\n")
}

// Update scrolls the body; esc or q dispatches session.DetailClosed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, closeKey) {
		return m, msgs.Dispatch(session.DetailClosed{})
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// View renders the overlay.
func (m Model) View() string {
	if !m.detail.Open {
		return ""
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(m.detail.Title),
		"",
		m.viewport.View(),
		styles.Dim.Render("↑/↓ scroll • esc close"),
	)

	return styles.Overlay.Width(max(m.width-2, 10)).Render(body)
}
