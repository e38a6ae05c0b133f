// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#E8590C")
	muted   = lipgloss.Color("#868E96")
	danger  = lipgloss.Color("#E03131")
	info    = lipgloss.Color("#1C7ED6")
)

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Box      lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Normal:   lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle().Foreground(danger),
		Info:     lipgloss.NewStyle().Foreground(info),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
