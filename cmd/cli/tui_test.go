// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/memory"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorResults(t *testing.T) {
	ctx := context.Background()
	results := memory.NewStore()
	store, err := state.NewFileStore(t.TempDir())
	require.NoError(t, err)

	stop := mirrorResults(ctx, results, store)
	require.NoError(t, results.ReplaceResults(ctx, []model.Recipe{{ID: "r-001", Title: "Lemon Garlic Chicken"}}))
	require.NoError(t, results.SetSelectedRecipe(ctx, "r-001"))
	stop()

	persisted, err := store.Results(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "Lemon Garlic Chicken", persisted[0].Title)

	selected, err := store.SelectedRecipe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r-001", selected)
}

func TestTUICommandHelp(t *testing.T) {
	cmd := newApp(nil).tuiCommand()
	assert.Equal(t, "tui", cmd.Use)
	assert.Contains(t, cmd.Long, "ctrl+n")
}
