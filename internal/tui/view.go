// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.screen == screenSignIn {
		return m.signInView()
	}
	return m.searchView()
}

func (m *Model) searchView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Recipe search"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Keyword ") + m.keyword.View())
	b.WriteString("\n")

	toggle := "[ ]"
	if m.inventory {
		toggle = "[x]"
	}
	b.WriteString(m.styles.Muted.Render(toggle+" only recipes I can cook with my inventory") + "\n")
	b.WriteString(m.pageIndicator() + "\n")

	box := m.styles.Box
	if m.focus == focusResults {
		box = box.BorderForeground(primary)
	}
	b.WriteString(box.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.noticeLine())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpLine(m.keys.ShortHelp())))
	return b.String()
}

func (m *Model) signInView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Sign in"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Email    ") + m.email.View() + "\n")
	b.WriteString(m.styles.Label.Render("Password ") + m.password.View() + "\n")
	if m.signInError != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.signInError) + "\n")
	}
	b.WriteString(m.styles.Help.Render("tab switch field • enter sign in • esc back • ctrl+c quit"))
	return b.String()
}

func (m *Model) pageIndicator() string {
	if m.view.State == model.StateIdle {
		return m.styles.Muted.Render(" ")
	}

	indicator := fmt.Sprintf("Page %d", m.view.Page.Page)
	if m.view.Page.TotalPages != nil && *m.view.Page.TotalPages > 0 {
		indicator = fmt.Sprintf("Page %d of %d", m.view.Page.Page, *m.view.Page.TotalPages)
	}
	indicator += " · " + m.view.Mode.String()
	if m.loading {
		indicator += " · loading..."
	}
	return m.styles.Muted.Render(indicator)
}

func (m *Model) noticeLine() string {
	switch {
	case m.status != "":
		return m.styles.Error.Render(m.status)
	case m.view.Notice == nil:
		return ""
	case m.view.Notice.Kind == model.NoticeError:
		return m.styles.Error.Render(m.view.Notice.Message)
	default:
		return m.styles.Info.Render(m.view.Notice.Message)
	}
}

// renderResults rebuilds the viewport content from the current recipes
func (m *Model) renderResults() {
	if m.view.State == model.StateIdle {
		m.viewport.SetContent(m.styles.Muted.Render(constants.MessageStartSearching))
		return
	}
	if len(m.recipes) == 0 {
		m.viewport.SetContent(m.styles.Muted.Render(constants.MessageNoRecipes))
		return
	}

	lines := make([]string, 0, len(m.recipes))
	for i, recipe := range m.recipes {
		marker := "  "
		if recipe.ID == m.selected {
			marker = "* "
		}
		line := marker + recipeLine(recipe)

		style := m.styles.Normal
		if i == m.cursor && m.focus == focusResults {
			style = m.styles.Selected
			line = "> " + line[2:]
		}
		lines = append(lines, style.Render(line))
	}
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func recipeLine(recipe model.Recipe) string {
	return fmt.Sprintf("%-40s %6.0f kcal  ★ %.1f (%d)  ♥ %d",
		truncate(recipe.Title, 40),
		recipe.CaloriesPerServe,
		recipe.Rating,
		recipe.TotalVotes,
		recipe.TimesFavorite,
	)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " • ")
}

func userMessage(err error) string {
	return service.UserMessage(err)
}
