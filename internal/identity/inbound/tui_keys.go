package inbound

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the login screen bindings. Digits and pasted text are
// handled directly and have no binding.
type KeyMap struct {
	Submit    key.Binding
	Resend    key.Binding
	Back      key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Resend: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "resend code"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "change email"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "delete"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

func (k KeyMap) emailHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Quit}
}

func (k KeyMap) codeHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Left, k.Right, k.Resend, k.Back, k.Quit}
}
