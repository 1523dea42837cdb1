// Package authform is the credential entry screen.
package authform

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/msgs"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/styles"
)

const inputWidth = 48

var submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load models"))

// Model wraps a masked text input and the submit action.
type Model struct {
	input   textinput.Model
	spinner spinner.Model
}

// New returns a form pre-filled with key.
func New(key string) Model {
	ti := textinput.New()
	ti.Placeholder = "Your API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Width = inputWidth
	ti.SetValue(key)

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.Spinner))

	return Model{input: ti, spinner: sp}
}

// Focus focuses the key input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears the key, as on logout.
func (m *Model) Reset() {
	m.input.Reset()
}

// Value returns the key as typed.
func (m Model) Value() string {
	return m.input.Value()
}

// Tick starts the loading spinner.
func (m Model) Tick() tea.Cmd {
	return m.spinner.Tick
}

// Update handles input while loading is false. Submitting emits
// msgs.SubmitKeyMsg; spinner ticks are always processed.
func (m Model) Update(msg tea.Msg, loading bool) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	if loading {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, submitKey) {
		k := strings.TrimSpace(m.input.Value())
		return m, func() tea.Msg { return msgs.SubmitKeyMsg{Key: k} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View renders the form. errText is shown verbatim below the button.
func (m Model) View(loading bool, errText string) string {
	button := styles.Button.Render("Load Models")
	if loading {
		button = styles.DisabledButton.Render("Loading...")
	}

	input := styles.FocusedInput.Width(inputWidth + 2).Render(m.input.View())
	if loading {
		input = styles.Input.Width(inputWidth + 2).Render(m.input.View())
	}

	parts := []string{
		styles.Title.Render("LLM Model Cards Viewer"),
		"",
		"Enter your CBORG API Key:",
		input,
		button,
	}

	if loading {
		parts = append(parts, "", m.spinner.View()+" "+styles.Dim.Render("Loading models..."))
	}

	if errText != "" {
		parts = append(parts, "", styles.Error.Width(inputWidth+4).Render(errText))
	}

	parts = append(parts, "", styles.Dim.Render("enter load models • ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
