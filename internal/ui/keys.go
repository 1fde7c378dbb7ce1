package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Any mode
	Interrupt  key.Binding
	ToggleMode key.Binding

	// Navigation mode
	Quit           key.Binding
	EnterChat      key.Binding
	Up             key.Binding
	Down           key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Top            key.Binding
	Bottom         key.Binding
	Help           key.Binding
	Logs           key.Binding
	CycleTheme     key.Binding
	ToggleMarkdown key.Binding

	// Chat mode
	Submit     key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	Backspace  key.Binding
	DeleteChar key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Toggle chat/navigation"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		EnterChat: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i/enter", "Start typing"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Oldest message"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Newest message"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Toggle log view"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleMarkdown: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Toggle markdown"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Send message"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Cursor right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "Start of line"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "End of line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "Delete before cursor"),
		),
		DeleteChar: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "Delete under cursor"),
		),
	}
}

// NavigationHelp groups navigation-mode bindings for the help overlay.
func (k keyMap) NavigationHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.EnterChat, k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Logs, k.CycleTheme, k.ToggleMarkdown, k.Help, k.Quit}
}

// ChatHelp groups chat-mode bindings for the help overlay.
func (k keyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Left, k.Right, k.Home, k.End, k.Backspace, k.DeleteChar, k.ToggleMode, k.Interrupt}
}
