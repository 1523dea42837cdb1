// Package browser is the authenticated screen: search box, capability and
// sort selectors, and a scrollable grid of model cards.
package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/format"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/styles"
	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/germanamz/modelcards/pkg/session"
	"github.com/germanamz/modelcards/pkg/view"
)

// EmptyMessage is shown when no entry survives the current query.
const EmptyMessage = "No models found matching your criteria"

// search box (3) + selectors (1) + count (1)
const chromeLines = 5

// Model renders whatever entries it was last given and turns key presses
// into session actions. It never filters or sorts by itself.
type Model struct {
	Keys KeyMap

	help    help.Model
	search  textinput.Model
	entries []catalog.Entry
	query   view.Query
	total   int

	cursor int
	offset int // first visible row
	width  int
	height int
}

// New returns an empty browser.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search models..."
	ti.Prompt = "/ "
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		Keys:   DefaultKeyMap(),
		help:   help.New(),
		search: ti,
		query:  view.DefaultQuery(),
	}
}

// SetSize sets the area available to the browser, help line included.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.search.Width = max(width-6, 10)
	m.scroll()
}

// SetEntries replaces the rendered list. total is the size of the whole
// catalog, q the query that produced entries.
func (m *Model) SetEntries(entries []catalog.Entry, total int, q view.Query) {
	m.entries = entries
	m.total = total
	m.query = q
	if m.search.Value() != q.Search {
		m.search.SetValue(q.Search)
	}
	m.Keys.ClearSearch.SetEnabled(q.Search != "")

	if m.cursor >= len(entries) {
		m.cursor = max(len(entries)-1, 0)
	}
	m.scroll()
}

// Reset returns the browser to its initial state, as on logout.
func (m *Model) Reset() {
	m.search.Blur()
	m.search.Reset()
	m.entries = nil
	m.total = 0
	m.cursor = 0
	m.offset = 0
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool {
	return m.search.Focused()
}

// Cursor returns the index of the highlighted entry.
func (m Model) Cursor() int {
	return m.cursor
}

// Update handles key presses. A non-nil action must be reduced into the
// session before the next message is processed, so the search box and the
// state never drift apart.
func (m Model) Update(msg tea.Msg) (Model, session.Action, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, nil
	}

	if m.search.Focused() {
		return m.updateSearch(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Search):
		return m, nil, m.search.Focus()
	case key.Matches(keyMsg, m.Keys.ClearSearch):
		return m, session.SearchCleared{}, nil
	case key.Matches(keyMsg, m.Keys.Capability):
		return m, session.CapabilityChanged{Capability: m.query.Capability.Next()}, nil
	case key.Matches(keyMsg, m.Keys.Sort):
		return m, session.SortChanged{Sort: m.query.Sort.Next()}, nil
	case key.Matches(keyMsg, m.Keys.Logout):
		return m, session.Logout{}, nil
	case key.Matches(keyMsg, m.Keys.Quit):
		return m, nil, tea.Quit
	case key.Matches(keyMsg, m.Keys.Open):
		if len(m.entries) == 0 {
			return m, nil, nil
		}
		return m, session.EntrySelected{Entry: m.entries[m.cursor]}, nil
	}

	m.move(keyMsg)

	return m, nil, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, session.Action, tea.Cmd) {
	if key.Matches(msg, m.Keys.EndSearch) {
		m.search.Blur()
		return m, nil, nil
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if after := m.search.Value(); after != before {
		m.cursor = 0
		m.offset = 0
		return m, session.SearchChanged{Term: after}, cmd
	}

	return m, nil, cmd
}

func (m *Model) move(msg tea.KeyMsg) {
	n := len(m.entries)
	if n == 0 {
		return
	}

	cols := m.columns()
	page := m.rows() * cols

	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.Keys.Down):
		if m.cursor+cols < n {
			m.cursor += cols
		} else if m.cursor/cols < (n-1)/cols {
			m.cursor = n - 1
		}
	case key.Matches(msg, m.Keys.Left):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.Keys.Right):
		m.cursor = min(m.cursor+1, n-1)
	case msg.Type == tea.KeyPgUp:
		m.cursor = max(m.cursor-page, 0)
	case msg.Type == tea.KeyPgDown:
		m.cursor = min(m.cursor+page, n-1)
	case msg.Type == tea.KeyHome:
		m.cursor = 0
	case msg.Type == tea.KeyEnd:
		m.cursor = n - 1
	}

	m.scroll()
}

// scroll keeps the cursor row inside the visible window.
func (m *Model) scroll() {
	cols := m.columns()
	rows := m.rows()
	row := m.cursor / cols

	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
}

func (m Model) columns() int {
	return format.Columns(m.width)
}

func (m Model) rows() int {
	return max((m.height-chromeLines-1)/format.CardHeight, 1)
}

// View renders the browser.
func (m Model) View() string {
	inputStyle := styles.Input
	if m.search.Focused() {
		inputStyle = styles.FocusedInput
	}

	parts := []string{
		inputStyle.Width(max(m.width-2, 12)).Render(m.search.View()),
		m.selectors(),
		styles.Dim.Render(fmt.Sprintf("Showing %d of %d models", len(m.entries), m.total)),
		m.grid(),
		m.help.View(m.Keys),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) selectors() string {
	return styles.Label.Render("Capability: ") + styles.Selector.Render(m.query.Capability.Label()) +
		"   " +
		styles.Label.Render("Sort: ") + styles.Selector.Render(m.query.Sort.Label())
}

func (m Model) grid() string {
	if len(m.entries) == 0 {
		return "\n" + styles.Dim.Render(EmptyMessage) + "\n"
	}

	cols := m.columns()
	cardWidth := max(m.width/cols, format.MinCardWidth)
	first := m.offset * cols
	last := min(first+m.rows()*cols, len(m.entries))

	var rows []string
	for start := first; start < last; start += cols {
		end := min(start+cols, last)
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, format.Card(m.entries[i], cardWidth, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return strings.Join(rows, "\n")
}
