// Package msgs defines the bubbletea messages shared between the TUI
// components.
package msgs

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/modelcards/pkg/session"
)

// ActionMsg asks the root model to apply a session action.
type ActionMsg struct {
	Action session.Action
}

// SubmitKeyMsg is sent when the user submits the credential form.
type SubmitKeyMsg struct {
	Key string
}

// FetchResultMsg carries the outcome of a catalog fetch. Action is either
// session.FetchSucceeded or session.FetchFailed, tagged with the generation
// the fetch was started under.
type FetchResultMsg struct {
	Action session.Action
}

// Dispatch wraps a as a command.
func Dispatch(a session.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}
