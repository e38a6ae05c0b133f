// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	usecase "github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/spf13/cobra"
)

func (a *app) searchCommand() *cobra.Command {
	var (
		inventory bool
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search recipes",
		Long: `Search recipes by title keyword. Without a keyword every recipe is listed.
With --inventory only recipes you can cook with your inventory are listed and
the keyword is ignored.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := a.coordinator(cmd.OutOrStdout(), limit)

			query := model.SearchQuery{
				Keyword:      strings.Join(args, " "),
				UseInventory: inventory,
			}
			if err := c.Submit(ctx, query); err != nil {
				return err
			}
			return a.renderPage(cmd, c)
		},
	}

	cmd.Flags().BoolVarP(&inventory, "inventory", "i", false, "only recipes you can cook with your inventory")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "recipes per page (default from config)")
	return cmd
}

func (a *app) nextCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next page of the last search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.navigate(cmd, cursor, "next", (*usecase.Coordinator).GoNext)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from this cursor instead of the stored one")
	return cmd
}

func (a *app) prevCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:     "prev",
		Aliases: []string{"previous"},
		Short:   "Show the previous page of the last search",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.navigate(cmd, cursor, "previous", (*usecase.Coordinator).GoPrevious)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from this cursor instead of the stored one")
	return cmd
}

func (a *app) navigate(cmd *cobra.Command, sealed, direction string, move func(*usecase.Coordinator, context.Context) error) error {
	ctx := cmd.Context()

	c, err := a.restore(ctx, cmd, sealed)
	if err != nil {
		return err
	}

	before := c.Snapshot().Generation
	if err := move(c, ctx); err != nil {
		return err
	}

	if c.Snapshot().Generation == before {
		slog.DebugContext(ctx, "no page in that direction", "direction", direction)
		fmt.Fprintf(cmd.OutOrStdout(), "There is no %s page.\n", direction)
		return nil
	}
	return a.renderPage(cmd, c)
}

// restore resumes the last search from sealed, or from the stored cursor
// when sealed is empty
func (a *app) restore(ctx context.Context, cmd *cobra.Command, sealed string) (*usecase.Coordinator, error) {
	if sealed == "" {
		stored, err := a.runtime.Store.LoadCursor(ctx)
		if err != nil {
			var notFound errors.NotFound
			if stderrors.As(err, &notFound) {
				return nil, errors.NewNotFound("No previous search, run the search command first", err)
			}
			return nil, err
		}
		sealed = stored
	}

	cursor, err := a.openCursor(ctx, sealed)
	if err != nil {
		return nil, err
	}

	c := a.coordinator(cmd.OutOrStdout(), cursor.Limit)
	if err := c.Restore(ctx, cursor); err != nil {
		return nil, err
	}
	return c, nil
}

// renderPage stores the cursor of the loaded page and prints the published
// results
func (a *app) renderPage(cmd *cobra.Command, c *usecase.Coordinator) error {
	ctx := cmd.Context()

	var sealed string
	if cursor, ok := c.Cursor(); ok {
		var err error
		sealed, err = a.sealCursor(ctx, cursor)
		if err != nil {
			return err
		}
		if err := a.runtime.Store.SaveCursor(ctx, sealed); err != nil {
			return errors.NewUnexpected("failed to store search cursor", err)
		}
	}

	recipes, err := a.runtime.Store.Results(ctx)
	if err != nil {
		return err
	}
	selected, err := a.runtime.Store.SelectedRecipe(ctx)
	if err != nil {
		return err
	}

	if !a.opts.showCursor {
		sealed = ""
	}
	page := newPageOutput(c.Snapshot(), recipes, selected, sealed)
	return writePage(cmd.OutOrStdout(), page, a.opts.jsonOutput, newTerminal(cmd.OutOrStdout()).Width())
}
