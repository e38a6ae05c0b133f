// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/spf13/cobra"
)

func (a *app) selectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <recipe-id>",
		Short: "Select a recipe from the current results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			recipes, err := a.runtime.Store.Results(ctx)
			if err != nil {
				return err
			}

			recipe, ok := findRecipe(recipes, args[0])
			if !ok {
				return errors.NewNotFound(fmt.Sprintf("Recipe %s is not in the current results", args[0]))
			}

			c := a.coordinator(cmd.OutOrStdout(), 0)
			if err := c.Select(ctx, recipe.ID); err != nil {
				return err
			}

			if a.opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), recipe)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s)\n", recipe.Title, recipe.ID)
			return nil
		},
	}
}

func (a *app) resultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the results of the last search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			view := model.SearchView{}
			c, err := a.restore(ctx, cmd, "")
			switch {
			case err == nil:
				view = c.Snapshot()
			case isNotFound(err):
			default:
				return err
			}

			recipes, err := a.runtime.Store.Results(ctx)
			if err != nil {
				return err
			}
			selected, err := a.runtime.Store.SelectedRecipe(ctx)
			if err != nil {
				return err
			}

			page := newPageOutput(view, recipes, selected, "")
			return writePage(cmd.OutOrStdout(), page, a.opts.jsonOutput, newTerminal(cmd.OutOrStdout()).Width())
		},
	}
}

func findRecipe(recipes []model.Recipe, id string) (model.Recipe, bool) {
	for _, recipe := range recipes {
		if recipe.ID == id {
			return recipe, true
		}
	}
	return model.Recipe{}, false
}

func isNotFound(err error) bool {
	var notFound errors.NotFound
	return stderrors.As(err, &notFound)
}
