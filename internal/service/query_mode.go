// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
)

// selectMode picks the remote operation for a query. Inventory mode takes
// precedence over any keyword.
func selectMode(query model.SearchQuery) model.QueryMode {
	query = query.Normalize()
	switch {
	case query.UseInventory:
		return model.ModeInventory
	case query.Keyword != "":
		return model.ModeKeyword
	default:
		return model.ModeAll
	}
}

// fetchPage issues exactly one remote operation for the given mode.
func fetchPage(ctx context.Context, fetcher port.RecipeFetcher, mode model.QueryMode, keyword string, page, limit int, token string) (*model.RecipePage, error) {
	switch mode {
	case model.ModeAll:
		return fetcher.FetchAll(ctx, page, limit, token)
	case model.ModeKeyword:
		return fetcher.FetchByKeyword(ctx, keyword, page, limit, token)
	case model.ModeInventory:
		return fetcher.FetchByInventory(ctx, page, limit, token)
	default:
		return nil, fmt.Errorf("unsupported query mode %d", mode)
	}
}
