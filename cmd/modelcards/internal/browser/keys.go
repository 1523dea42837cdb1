package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the model grid. It implements help.KeyMap.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Open        key.Binding
	Search      key.Binding
	EndSearch   key.Binding
	ClearSearch key.Binding
	Capability  key.Binding
	Sort        key.Binding
	Logout      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		EndSearch:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
		ClearSearch: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search")),
		Capability:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "capability")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Logout:      key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "change API key")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.ClearSearch, k.Capability, k.Sort, k.Logout, k.Quit}
}

// FullHelp returns all bindings grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Search, k.ClearSearch},
		{k.Capability, k.Sort, k.Logout, k.Quit},
	}
}
