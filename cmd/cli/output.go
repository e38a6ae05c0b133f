// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// pageOutput is the --json form of a result page
type pageOutput struct {
	Mode     string          `json:"mode,omitempty"`
	Keyword  string          `json:"keyword,omitempty"`
	Page     model.PageState `json:"page"`
	Notice   string          `json:"notice,omitempty"`
	Recipes  []model.Recipe  `json:"recipes"`
	Selected string          `json:"selected,omitempty"`
	Cursor   string          `json:"cursor,omitempty"`
}

func newPageOutput(view model.SearchView, recipes []model.Recipe, selected, cursor string) pageOutput {
	out := pageOutput{
		Page:     view.Page,
		Recipes:  recipes,
		Selected: selected,
		Cursor:   cursor,
	}
	if out.Recipes == nil {
		out.Recipes = []model.Recipe{}
	}
	if view.State != model.StateIdle {
		out.Mode = view.Mode.String()
		out.Keyword = view.Query.Keyword
	}
	if view.Notice != nil {
		out.Notice = view.Notice.Message
	}
	return out
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writePage(w io.Writer, page pageOutput, asJSON bool, width int) error {
	if asJSON {
		return writeJSON(w, page)
	}

	if len(page.Recipes) == 0 {
		message := page.Notice
		if message == "" {
			message = constants.MessageNoRecipes
		}
		_, err := fmt.Fprintln(w, message)
		return err
	}

	fmt.Fprintln(w, recipeTable(page.Recipes, page.Selected, width))
	fmt.Fprintln(w, pageIndicator(page))
	if page.Cursor != "" {
		fmt.Fprintln(w, "cursor:", page.Cursor)
	}
	return nil
}

func recipeTable(recipes []model.Recipe, selected string, width int) string {
	rows := make([][]string, 0, len(recipes))
	for _, recipe := range recipes {
		marker := ""
		if recipe.ID == selected {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			recipe.ID,
			recipe.Title,
			strconv.FormatFloat(recipe.CaloriesPerServe, 'f', 0, 64),
			fmt.Sprintf("%.1f (%d)", recipe.Rating, recipe.TotalVotes),
			strconv.Itoa(recipe.TimesFavorite),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "TITLE", "KCAL", "RATING", "FAVORITES").
		Rows(rows...)
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}

func pageIndicator(page pageOutput) string {
	indicator := fmt.Sprintf("Page %d", page.Page.Page)
	if page.Page.TotalPages != nil && *page.Page.TotalPages > 0 {
		indicator = fmt.Sprintf("Page %d of %d", page.Page.Page, *page.Page.TotalPages)
	}
	if page.Mode != "" {
		indicator += " (" + page.Mode + ")"
	}

	switch {
	case page.Page.HasPrev && page.Page.HasNext:
		indicator += " · prev / next available"
	case page.Page.HasNext:
		indicator += " · next available"
	case page.Page.HasPrev:
		indicator += " · prev available"
	}
	return indicator
}
