// Package format renders catalog entries as terminal cards.
package format

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/styles"
	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/mattn/go-runewidth"
)

const (
	// CardHeight is the rendered height of every card, borders included.
	CardHeight = 8

	// MinCardWidth is the narrowest card the grid will lay out.
	MinCardWidth = 40

	toolBadge = "Tool Usage"
	ellipsis  = "…"

	// border (2) + horizontal padding (2)
	cardChrome = 4
)

// Truncate shortens s to at most width terminal cells, appending an ellipsis
// when it cuts. Newlines become spaces.
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Card renders e in a bordered box of the given total width.
func Card(e catalog.Entry, width int, selected bool) string {
	inner := max(width-cardChrome, 10)

	lines := []string{
		header(e, inner),
		styles.Dim.Render(Truncate(e.Description(), inner)),
		field("Capabilities", e.CapabilitySummary(), inner),
		field("Max Tokens", e.TokenLimits(), inner),
		field("Cost per 10^6 Tokens", e.CostSummary(), inner),
		styles.Dim.Render(Truncate("ID: "+e.DisplayID(), inner)),
	}

	style := styles.Card
	if selected {
		style = styles.SelectedCard
	}

	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func header(e catalog.Entry, width int) string {
	if !e.HasToolUsage() {
		return styles.Label.Render(Truncate(e.DisplayName(), width))
	}

	badge := styles.Badge.Render(toolBadge)
	nameWidth := width - lipgloss.Width(badge) - 1
	name := styles.Label.Render(Truncate(e.DisplayName(), nameWidth))
	gap := max(width-lipgloss.Width(name)-lipgloss.Width(badge), 1)

	return name + strings.Repeat(" ", gap) + badge
}

func field(label, value string, width int) string {
	prefix := label + ": "
	valueWidth := width - runewidth.StringWidth(prefix)
	if valueWidth <= 0 {
		return styles.Label.Render(Truncate(prefix, width))
	}
	return styles.Label.Render(prefix) + Truncate(value, valueWidth)
}

// Columns returns how many cards fit side by side in width.
func Columns(width int) int {
	return max(width/MinCardWidth, 1)
}
