// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
)

// RecipeFetcher defines the remote recipe query operations
// This abstraction allows different sources (recipe API, OpenSearch, etc.)
// without the coordinator knowing about specific implementations
type RecipeFetcher interface {
	// FetchAll lists recipes without filtering
	FetchAll(ctx context.Context, page, limit int, token string) (*model.RecipePage, error)

	// FetchByKeyword searches recipes matching keyword
	FetchByKeyword(ctx context.Context, keyword string, page, limit int, token string) (*model.RecipePage, error)

	// FetchByInventory lists recipes makeable with the inventory of the token's owner
	FetchByInventory(ctx context.Context, page, limit int, token string) (*model.RecipePage, error)

	// IsReady checks if the recipe source is ready
	IsReady(ctx context.Context) error
}
