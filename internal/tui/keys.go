// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings of the search screen
type KeyMap struct {
	Quit            key.Binding
	Submit          key.Binding
	ToggleInventory key.Binding
	Next            key.Binding
	Previous        key.Binding
	Up              key.Binding
	Down            key.Binding
	FocusInput      key.Binding
	Back            key.Binding
}

// DefaultKeyMap returns the default keybindings. Terminals report ctrl+i as
// tab, so one binding serves both.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search / select"),
		),
		ToggleInventory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "inventory"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next page"),
		),
		Previous: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "previous page"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleInventory, k.Previous, k.Next, k.FocusInput, k.Quit}
}
