package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Activate key.Binding
	Toggle   key.Binding
	Cancel   key.Binding
	Focus    key.Binding

	Database key.Binding
	Theme    key.Binding
	Expand   key.Binding

	Add     key.Binding
	Delete  key.Binding
	Reset   key.Binding
	Confirm key.Binding
	Deny    key.Binding

	Generate  key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "less")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "more")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "+5")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "-5")),
	Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "min")),
	End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "max")),
	Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch to database")),

	Database: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "database")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Expand:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand")),

	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset category")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	Deny:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),

	Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "regenerate")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}
