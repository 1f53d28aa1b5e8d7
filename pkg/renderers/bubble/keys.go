package bubble

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings the form reacts to. Unbound keys edit the
// focused part.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Escape key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "step/prev option")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "step/next option")),
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "revert")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Accept, k.Escape, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Accept, k.Escape, k.Submit, k.Quit},
	}
}
