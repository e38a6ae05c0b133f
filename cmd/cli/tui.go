// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/memory"
	usecase "github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal UI",
		Long: `Launch the interactive recipe browser.

Controls:
  enter        - Search / select the highlighted recipe
  tab          - Toggle inventory search
  ctrl+n       - Next page
  ctrl+p       - Previous page
  ↑/k, ↓/j     - Move through results
  /            - Edit the keyword
  ctrl+c       - Quit`,
		Args: cobra.NoArgs,
		RunE: a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	results := memory.NewStore()
	viewport := &tui.ProgramViewport{}
	publisher := usecase.NewResultPublisher(results, a.runtime.Events)
	coordinator := usecase.NewCoordinator(a.runtime.Fetcher, a.runtime.Store, publisher, viewport, a.config.Recipe.PageSize)
	session := usecase.NewSessionService(a.runtime.Authenticator, a.runtime.Store)

	program := tea.NewProgram(
		tui.NewModel(ctx, coordinator, results, session),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	viewport.Attach(program)

	stop := mirrorResults(ctx, results, a.runtime.Store)
	_, errRun := program.Run()
	stop()

	if cursor, ok := coordinator.Cursor(); ok {
		sealed, err := a.sealCursor(ctx, cursor)
		if err == nil {
			err = a.runtime.Store.SaveCursor(ctx, sealed)
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to store search cursor", "error", err)
		}
	}

	if errRun != nil {
		return fmt.Errorf("TUI error: %w", errRun)
	}
	return nil
}

// mirrorResults copies every change of the in-process results into the
// persistent store so the results command sees the last TUI page. The
// returned stop waits for the final copy.
func mirrorResults(ctx context.Context, results *memory.Store, store port.StateStore) (stop func()) {
	changes, cancel := results.Subscribe()
	done := make(chan struct{})
	finished := make(chan struct{})

	copyResults := func() {
		if err := store.ReplaceResults(ctx, results.Results()); err != nil {
			slog.WarnContext(ctx, "failed to persist search results", "error", err)
		}
		if selected := results.SelectedRecipe(); selected != "" {
			if err := store.SetSelectedRecipe(ctx, selected); err != nil {
				slog.WarnContext(ctx, "failed to persist selected recipe", "error", err)
			}
		}
	}

	go func() {
		defer close(finished)
		for {
			select {
			case <-changes:
				copyResults()
			case <-done:
				select {
				case <-changes:
					copyResults()
				default:
				}
				return
			}
		}
	}()

	return func() {
		cancel()
		close(done)
		<-finished
	}
}
