package dashboard

import "github.com/charmbracelet/bubbles/key"

// pickerKeys holds key bindings while the picker pane has focus.
type pickerKeys struct {
	Field   key.Binding
	Value   key.Binding
	Load    key.Binding
	Refresh key.Binding
	Pane    key.Binding
	Quit    key.Binding
}

// ShortHelp returns the picker bindings for the help bar.
func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Field, k.Value, k.Load, k.Refresh, k.Pane, k.Quit}
}

// FullHelp returns the picker bindings grouped for expanded help.
func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Field, k.Value, k.Load},
		{k.Refresh, k.Pane, k.Quit},
	}
}

// tabKeys holds key bindings while the tab pane has focus.
type tabKeys struct {
	NextTab key.Binding
	PrevTab key.Binding
	Driver  key.Binding
	Refresh key.Binding
	Pane    key.Binding
	Quit    key.Binding
}

// ShortHelp returns the tab pane bindings for the help bar.
func (k tabKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.Driver, k.Refresh, k.Pane, k.Quit}
}

// FullHelp returns the tab pane bindings grouped for expanded help.
func (k tabKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Driver},
		{k.Refresh, k.Pane, k.Quit},
	}
}

// PickerKeyMap returns the key bindings for the picker pane.
func PickerKeyMap() pickerKeys {
	return pickerKeys{
		Field: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "field"),
		),
		Value: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "change"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load session"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Pane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TabKeyMap returns the key bindings for the tab pane.
func TabKeyMap() tabKeys {
	return tabKeys{
		NextTab: key.NewBinding(
			key.WithKeys("]", "right", "l"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("[", "left", "h"),
			key.WithHelp("[", "prev tab"),
		),
		Driver: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "next driver"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload session"),
		),
		Pane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HelpBindings returns the help key map for the focused pane.
func HelpBindings(focus Focus) interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
} {
	if focus == PaneTabs {
		return TabKeyMap()
	}
	return PickerKeyMap()
}
