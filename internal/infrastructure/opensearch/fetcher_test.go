// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockOpenSearchClient is a mock implementation of OpenSearchClientRetriever
type MockOpenSearchClient struct {
	responses map[string]*SearchResponse
	errors    map[string]error
	queries   map[string][]map[string]any
}

func NewMockOpenSearchClient() *MockOpenSearchClient {
	return &MockOpenSearchClient{
		responses: map[string]*SearchResponse{},
		errors:    map[string]error{},
		queries:   map[string][]map[string]any{},
	}
}

func (m *MockOpenSearchClient) Search(ctx context.Context, index string, query []byte) (*SearchResponse, error) {
	var decoded map[string]any
	if err := json.Unmarshal(query, &decoded); err != nil {
		return nil, err
	}
	m.queries[index] = append(m.queries[index], decoded)

	if err := m.errors[index]; err != nil {
		return nil, err
	}
	if resp, ok := m.responses[index]; ok {
		return resp, nil
	}
	return &SearchResponse{}, nil
}

func (m *MockOpenSearchClient) SetSearchResponse(index string, response *SearchResponse) {
	m.responses[index] = response
}

func (m *MockOpenSearchClient) SetSearchError(index string, err error) {
	m.errors[index] = err
}

func recipeHit(t *testing.T, id string, source recipeSource) Hit {
	t.Helper()
	raw, err := json.Marshal(source)
	require.NoError(t, err)
	return Hit{ID: id, Source: raw}
}

func subjectToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func testConfig() Config {
	return Config{URL: "http://localhost:9200", Index: "recipes", InventoryIndex: "inventories"}
}

func TestOpenSearchFetcherQueries(t *testing.T) {
	tests := []struct {
		name          string
		fetch         func(*OpenSearchFetcher, string) (*model.RecipePage, error)
		expectedQuery string
	}{
		{
			name: "unfiltered listing uses match_all",
			fetch: func(f *OpenSearchFetcher, token string) (*model.RecipePage, error) {
				return f.FetchAll(context.Background(), 2, 10, token)
			},
			expectedQuery: "match_all",
		},
		{
			name: "keyword uses multi_match",
			fetch: func(f *OpenSearchFetcher, token string) (*model.RecipePage, error) {
				return f.FetchByKeyword(context.Background(), `chicken "tikka"`, 2, 10, token)
			},
			expectedQuery: "multi_match",
		},
		{
			name: "inventory uses terms_set",
			fetch: func(f *OpenSearchFetcher, token string) (*model.RecipePage, error) {
				return f.FetchByInventory(context.Background(), 2, 10, token)
			},
			expectedQuery: "terms_set",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewMockOpenSearchClient()
			client.SetSearchResponse("recipes", &SearchResponse{Hits: Hits{
				Total: Total{Value: 25},
				Hits: []Hit{recipeHit(t, "r11", recipeSource{
					Title:        "Chicken Tikka",
					Img:          "tikka.png",
					Calification: 4.2,
					TotalVotes:   10,
					Ingredients:  []string{"chicken"},
				})},
			}})
			client.SetSearchResponse("inventories", &SearchResponse{Hits: Hits{
				Total: Total{Value: 1},
				Hits:  []Hit{{ID: "user-1", Source: json.RawMessage(`{"ingredients": ["chicken", "rice"]}`)}},
			}})

			fetcher := newFetcher(client, testConfig())
			page, err := tc.fetch(fetcher, subjectToken(t, "user-1"))
			require.NoError(t, err)

			assert.Equal(t, &model.RecipePage{
				Docs: []model.Recipe{{
					ID:         "r11",
					Title:      "Chicken Tikka",
					Image:      "tikka.png",
					Rating:     4.2,
					TotalVotes: 10,
				}},
				TotalPages:  3,
				Page:        2,
				HasPrevPage: true,
				HasNextPage: true,
			}, page)

			queries := client.queries["recipes"]
			require.Len(t, queries, 1)
			assert.Equal(t, float64(10), queries[0]["from"])
			assert.Equal(t, float64(10), queries[0]["size"])
			query, ok := queries[0]["query"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, query, tc.expectedQuery)
		})
	}
}

func TestOpenSearchFetcherInventoryTerms(t *testing.T) {
	client := NewMockOpenSearchClient()
	client.SetSearchResponse("inventories", &SearchResponse{Hits: Hits{
		Hits: []Hit{{ID: "user-1", Source: json.RawMessage(`{"ingredients": ["egg", "rice"]}`)}},
	}})

	fetcher := newFetcher(client, testConfig())
	_, err := fetcher.FetchByInventory(context.Background(), 1, 5, subjectToken(t, "user-1"))
	require.NoError(t, err)

	inventoryQueries := client.queries["inventories"]
	require.Len(t, inventoryQueries, 1)
	ids := inventoryQueries[0]["query"].(map[string]any)["ids"].(map[string]any)["values"]
	assert.Equal(t, []any{"user-1"}, ids)

	termsSet := client.queries["recipes"][0]["query"].(map[string]any)["terms_set"].(map[string]any)
	terms := termsSet["ingredients"].(map[string]any)["terms"]
	assert.Equal(t, []any{"egg", "rice"}, terms)
}

func TestOpenSearchFetcherEmptyInventory(t *testing.T) {
	client := NewMockOpenSearchClient()

	fetcher := newFetcher(client, testConfig())
	page, err := fetcher.FetchByInventory(context.Background(), 1, 10, subjectToken(t, "user-1"))
	require.NoError(t, err)

	assert.Empty(t, page.Docs)
	assert.NotNil(t, page.Docs)
	assert.Zero(t, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.Empty(t, client.queries["recipes"])
}

func TestOpenSearchFetcherInventoryNeedsSubject(t *testing.T) {
	fetcher := newFetcher(NewMockOpenSearchClient(), testConfig())

	_, err := fetcher.FetchByInventory(context.Background(), 1, 10, "opaque")

	var unauthenticated errors.Unauthenticated
	assert.True(t, stderrors.As(err, &unauthenticated))
}

func TestOpenSearchFetcherErrors(t *testing.T) {
	client := NewMockOpenSearchClient()
	client.SetSearchError("recipes", stderrors.New("connection refused"))
	fetcher := newFetcher(client, testConfig())

	_, err := fetcher.FetchAll(context.Background(), 1, 10, "")
	var unavailable errors.ServiceUnavailable
	assert.True(t, stderrors.As(err, &unavailable))
	assert.True(t, stderrors.As(fetcher.IsReady(context.Background()), &unavailable))

	_, err = fetcher.FetchAll(context.Background(), 1, 0, "")
	var validation errors.Validation
	assert.True(t, stderrors.As(err, &validation))
}

func TestOpenSearchFetcherSkipsBadHits(t *testing.T) {
	client := NewMockOpenSearchClient()
	client.SetSearchResponse("recipes", &SearchResponse{Hits: Hits{
		Total: Total{Value: 2},
		Hits: []Hit{
			{ID: "bad", Source: json.RawMessage(`"not an object"`)},
			recipeHit(t, "good", recipeSource{Title: "Good"}),
		},
	}})

	page, err := newFetcher(client, testConfig()).FetchAll(context.Background(), 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "good", page.Docs[0].ID)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrevPage)
	assert.False(t, page.HasNextPage)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		page         int
		limit        int
		expectedPage *model.RecipePage
	}{
		{
			name: "first of three", total: 21, page: 1, limit: 10,
			expectedPage: &model.RecipePage{Docs: []model.Recipe{}, TotalPages: 3, Page: 1, HasNextPage: true},
		},
		{
			name: "exact multiple last page", total: 20, page: 2, limit: 10,
			expectedPage: &model.RecipePage{Docs: []model.Recipe{}, TotalPages: 2, Page: 2, HasPrevPage: true},
		},
		{
			name: "no hits", total: 0, page: 1, limit: 10,
			expectedPage: &model.RecipePage{Docs: []model.Recipe{}, TotalPages: 0, Page: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedPage, paginate(nil, tc.total, tc.page, tc.limit))
		})
	}
}

func TestRenderEscapesKeyword(t *testing.T) {
	query, err := Render(context.Background(), queryRecipeTemplate, RecipeQuery{Size: 10, Keyword: `a"b\c`})
	require.NoError(t, err)
	assert.True(t, json.Valid(query))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(query, &decoded))
	multiMatch := decoded["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, `a"b\c`, multiMatch["query"])
}

func TestNewFetcherValidation(t *testing.T) {
	_, err := NewFetcher(context.Background(), Config{Index: "recipes"})
	assert.Error(t, err)

	_, err = NewFetcher(context.Background(), Config{URL: "http://localhost:9200"})
	assert.Error(t, err)

	fetcher, err := NewFetcher(context.Background(), Config{URL: "http://localhost:9200", Index: "recipes"})
	require.NoError(t, err)
	assert.Equal(t, "recipes-inventory", fetcher.inventoryIndex)
}
