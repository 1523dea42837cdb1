// Package styles holds the centralized lipgloss style definitions for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Title is used for screen headings.
	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan

	// Label is used for field names on cards and in the filter bar.
	Label = lipgloss.NewStyle().Bold(true)

	// Dim is used for secondary text (ids, help, placeholders).
	Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	// Error is used for the single user-visible error line.
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red

	// Spinner colors the loading indicator.
	Spinner = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta

	// Badge marks models with tool usage.
	Badge = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 1)

	// Card is a model card in the grid.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)

	// SelectedCard is the card under the cursor.
	SelectedCard = Card.BorderForeground(lipgloss.Color("6"))

	// Input frames text inputs; FocusedInput when they have focus.
	Input        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	FocusedInput = Input.BorderForeground(lipgloss.Color("2")) // green

	// Selector shows the active capability and sort choices.
	Selector = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow

	// Overlay frames the detail view.
	Overlay = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1)

	// Button renders the submit action on the credential form.
	Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Padding(0, 2)

	// DisabledButton is Button while a fetch is in flight.
	DisabledButton = Button.Background(lipgloss.Color("8"))
)
