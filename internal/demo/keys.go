package demo

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the demo key bindings.
type KeyMap struct {
	SubmitLow    key.Binding
	SubmitNormal key.Binding
	SubmitHigh   key.Binding
	SubmitMax    key.Binding

	Override     key.Binding
	OverrideDrop key.Binding

	Dismiss      key.Binding
	DismissQueue key.Binding
	DismissAll   key.Binding

	Help key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SubmitNormal, k.Override, k.Dismiss, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SubmitLow, k.SubmitNormal, k.SubmitHigh, k.SubmitMax},
		{k.Override, k.OverrideDrop},
		{k.Dismiss, k.DismissQueue, k.DismissAll},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default demo key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SubmitLow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "enqueue low"),
		),
		SubmitNormal: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "enqueue normal"),
		),
		SubmitHigh: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "enqueue high"),
		),
		SubmitMax: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "enqueue max"),
		),
		Override: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "override"),
		),
		OverrideDrop: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "override, drop queue"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss displayed"),
		),
		DismissQueue: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "clear queue"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dismiss all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
