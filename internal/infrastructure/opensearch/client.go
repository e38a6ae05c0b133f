// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

var (
	recipeFields    = []string{"title", "img", "caloriesPerServe", "timesFavorite", "calification", "totalVotes"}
	inventoryFields = []string{"ingredients"}
)

// httpClient runs searches through opensearch-go; _source is narrowed to
// the fields registered for the index
type httpClient struct {
	client       *opensearchapi.Client
	sourceFields map[string][]string
}

func (c *httpClient) Search(ctx context.Context, index string, query []byte) (*SearchResponse, error) {

	slog.DebugContext(ctx, "executing opensearch search",
		"index", index,
		"query", string(query),
	)

	params := opensearchapi.SearchParams{}
	if fields, ok := c.sourceFields[index]; ok {
		params.Source = true
		params.SourceIncludes = fields
	}

	searchResponse, err := c.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{index},
		Body:    bytes.NewReader(query),
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("search on index %s failed: %w", index, err)
	}
	if searchResponse.Errors {
		return nil, fmt.Errorf("search on index %s returned errors", index)
	}

	hits := make([]Hit, 0, len(searchResponse.Hits.Hits))
	for _, hit := range searchResponse.Hits.Hits {
		hits = append(hits, Hit{ID: hit.ID, Score: float64(hit.Score), Source: hit.Source})
	}

	return &SearchResponse{
		Hits: Hits{
			Total: Total{Value: searchResponse.Hits.Total.Value},
			Hits:  hits,
		},
	}, nil
}

func newHTTPClient(client *opensearchapi.Client, config Config) *httpClient {
	return &httpClient{
		client: client,
		sourceFields: map[string][]string{
			config.Index:          recipeFields,
			config.InventoryIndex: inventoryFields,
		},
	}
}
