// Package app is the root bubbletea model. It owns the session state and
// routes every change through session.Reduce.
package app

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/authform"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/browser"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/detailview"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/msgs"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/styles"
	"github.com/germanamz/modelcards/pkg/session"
	"github.com/germanamz/modelcards/pkg/view"
)

// header line + blank line above the browser
const headerLines = 2

// Options configures a Model.
type Options struct {
	// Defaults is the query a fresh session starts with.
	Defaults view.Query
	// Builder computes the visible list.
	Builder view.Builder
	// Fetcher returns a catalog source authenticated with key.
	Fetcher func(key string) session.Fetcher
	// Renderer builds the detail body renderer for a width. Nil shows
	// plain JSON.
	Renderer func(width int) detailview.Renderer
	// Logger receives phase transitions. Nil discards.
	Logger *slog.Logger
	// Key pre-fills the credential form.
	Key string
	// AutoLoad submits Key on start when it is not empty.
	AutoLoad bool
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	state    session.State
	builder  view.Builder
	fetcher  func(key string) session.Fetcher
	renderer func(width int) detailview.Renderer
	log      *slog.Logger
	autoLoad bool

	auth    authform.Model
	browser browser.Model
	detail  detailview.Model

	width  int
	height int
}

// New returns the root model. ctx bounds every fetch it starts.
func New(ctx context.Context, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	auth := authform.New(opts.Key)
	auth.Focus()

	return Model{
		ctx:      ctx,
		state:    session.New(opts.Defaults),
		builder:  opts.Builder,
		fetcher:  opts.Fetcher,
		renderer: opts.Renderer,
		log:      log,
		autoLoad: opts.AutoLoad && opts.Key != "",
		auth:     auth,
		browser:  browser.New(),
		detail:   detailview.New(nil),
	}
}

// State returns the current session state.
func (m Model) State() session.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	if !m.autoLoad {
		return textinput.Blink
	}

	key := m.auth.Value()
	return tea.Batch(textinput.Blink, func() tea.Msg { return msgs.SubmitKeyMsg{Key: key} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case msgs.SubmitKeyMsg:
		return m.submit(msg.Key)

	case msgs.ActionMsg:
		cmd := m.dispatch(msg.Action)
		return m, cmd

	case msgs.FetchResultMsg:
		cmd := m.dispatch(msg.Action)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(msg, m.state.Phase == session.Loading)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.state.Selected != nil:
		m.detail, cmd = m.detail.Update(msg)
	case m.state.Phase == session.Authenticated:
		var a session.Action
		m.browser, a, cmd = m.browser.Update(msg)
		if a != nil {
			cmd = tea.Batch(cmd, m.dispatch(a))
		}
	default:
		m.auth, cmd = m.auth.Update(msg, m.state.Phase == session.Loading)
	}

	return m, cmd
}

// submit stores the key and, when it is usable, starts a fetch tagged with
// the new generation.
func (m Model) submit(key string) (tea.Model, tea.Cmd) {
	m.dispatch(session.KeyChanged{Key: key})
	m.dispatch(session.FetchStarted{})

	if m.state.Phase != session.Loading {
		return m, nil
	}

	return m, tea.Batch(m.fetchCmd(m.state.Key, m.state.Gen), m.auth.Tick())
}

func (m Model) fetchCmd(key string, gen uint64) tea.Cmd {
	ctx := m.ctx
	f := m.fetcher(key)

	return func() tea.Msg {
		return msgs.FetchResultMsg{Action: session.Load(ctx, f, gen)}
	}
}

// dispatch reduces a into the state and resyncs the sub-models.
func (m *Model) dispatch(a session.Action) tea.Cmd {
	prev := m.state
	m.state = session.Reduce(prev, a)

	if prev.Phase != m.state.Phase {
		m.log.Info("session phase",
			"from", prev.Phase.String(),
			"to", m.state.Phase.String(),
			"gen", m.state.Gen,
			"models", len(m.state.Catalog),
		)
	}
	if m.state.Err != "" && m.state.Err != prev.Err {
		m.log.Warn("session error", "error", m.state.Err)
	}

	var cmd tea.Cmd
	if _, ok := a.(session.Logout); ok && prev.Phase == session.Authenticated {
		m.auth.Reset()
		m.browser.Reset()
		cmd = m.auth.Focus()
	}

	m.sync()

	return cmd
}

// sync pushes the derived view of the state into the sub-models.
func (m *Model) sync() {
	visible := m.state.Visible(m.builder)
	m.browser.SetEntries(visible, len(m.state.Catalog), m.state.Query)
	m.detail.Show(m.state.Detail())
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.browser.SetSize(width, height-headerLines)
	m.detail.SetSize(width, height)
	if m.renderer != nil {
		m.detail.SetRenderer(m.renderer(width - 8))
	}
}

func (m Model) View() string {
	switch {
	case m.state.Phase != session.Authenticated:
		form := m.auth.View(m.state.Phase == session.Loading, m.state.Err)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	case m.detail.Open():
		return m.detail.View()
	default:
		return styles.Title.Render("LLM Model Cards") + "\n\n" + m.browser.View()
	}
}
