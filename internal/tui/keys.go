package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	StartPause key.Binding
	Reset      key.Binding
	Save       key.Binding
	FocusUp    key.Binding
	FocusDown  key.Binding
	BreakUp    key.Binding
	BreakDown  key.Binding
	AutoRepeat key.Binding
	History    key.Binding
	Export     key.Binding
	Clear      key.Binding
	TakeBreak  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		StartPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		FocusUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "focus")),
		FocusDown:  key.NewBinding(key.WithKeys("-", "_")),
		BreakUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "break")),
		BreakDown:  key.NewBinding(key.WithKeys("[")),
		AutoRepeat: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-repeat")),
		History:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		TakeBreak:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stretch")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.StartPause, keys.Reset, keys.History, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.StartPause, keys.Reset, keys.Save},
		{keys.FocusUp, keys.BreakUp, keys.AutoRepeat},
		{keys.History, keys.Export, keys.Clear},
		{keys.TakeBreak, keys.Help, keys.Quit},
	}
}
