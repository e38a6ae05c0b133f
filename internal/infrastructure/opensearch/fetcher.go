// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"text/template"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

var templateFuncs = template.FuncMap{
	"quote": quoteJSON,
}

var (
	queryRecipeTemplate = template.Must(
		template.New("queryRecipe").Funcs(templateFuncs).Parse(queryRecipeSource))
	queryInventoryTemplate = template.Must(
		template.New("queryInventory").Funcs(templateFuncs).Parse(queryInventorySource))
)

// quoteJSON renders s as a JSON string literal
func quoteJSON(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

// RecipeQuery is the data rendered into the recipe query template
type RecipeQuery struct {
	From        int
	Size        int
	Keyword     string
	Ingredients []string
}

// OpenSearchFetcher implements the port.RecipeFetcher interface by querying
// a recipe index directly
type OpenSearchFetcher struct {
	client         OpenSearchClientRetriever
	index          string
	inventoryIndex string
}

// OpenSearchClientRetriever defines the interface for OpenSearch operations
// This allows for easy mocking and testing
type OpenSearchClientRetriever interface {
	Search(ctx context.Context, index string, query []byte) (*SearchResponse, error)
}

// FetchAll lists every recipe
func (os *OpenSearchFetcher) FetchAll(ctx context.Context, page, limit int, token string) (*model.RecipePage, error) {
	return os.queryRecipes(ctx, page, limit, RecipeQuery{})
}

// FetchByKeyword matches the keyword against recipe titles
func (os *OpenSearchFetcher) FetchByKeyword(ctx context.Context, keyword string, page, limit int, token string) (*model.RecipePage, error) {
	return os.queryRecipes(ctx, page, limit, RecipeQuery{Keyword: keyword})
}

// FetchByInventory returns the recipes whose every ingredient is in the
// caller's inventory. The caller is identified by the token subject.
func (os *OpenSearchFetcher) FetchByInventory(ctx context.Context, page, limit int, token string) (*model.RecipePage, error) {
	claims, err := auth.ParseClaims(token)
	if err != nil || claims.Subject == "" {
		return nil, errors.NewUnauthenticated("inventory search needs a signed-in user", err)
	}

	ingredients, err := os.inventory(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		slog.DebugContext(ctx, "inventory is empty, no recipe can match",
			"subject", claims.Subject,
		)
		return paginate(nil, 0, page, limit), nil
	}

	return os.queryRecipes(ctx, page, limit, RecipeQuery{Ingredients: ingredients})
}

// IsReady runs an empty search against the recipe index
func (os *OpenSearchFetcher) IsReady(ctx context.Context) error {
	if _, err := os.client.Search(ctx, os.index, []byte(readinessQuery)); err != nil {
		return errors.NewServiceUnavailable("opensearch is not ready", err)
	}
	return nil
}

func (os *OpenSearchFetcher) queryRecipes(ctx context.Context, page, limit int, q RecipeQuery) (*model.RecipePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return nil, errors.NewValidation("page size must be positive")
	}
	q.From = (page - 1) * limit
	q.Size = limit

	query, err := Render(ctx, queryRecipeTemplate, q)
	if err != nil {
		return nil, errors.NewUnexpected("failed to render recipe query", err)
	}

	response, err := os.client.Search(ctx, os.index, query)
	if err != nil {
		slog.ErrorContext(ctx, "opensearch recipe search failed", "error", err)
		return nil, errors.NewServiceUnavailable("opensearch search failed", err)
	}

	recipes := os.convertResponse(ctx, response)

	slog.DebugContext(ctx, "opensearch search completed",
		"results_count", len(recipes),
		"total_hits", response.Hits.Total.Value,
	)
	return paginate(recipes, response.Hits.Total.Value, page, limit), nil
}

func (os *OpenSearchFetcher) inventory(ctx context.Context, subject string) ([]string, error) {
	query, err := Render(ctx, queryInventoryTemplate, struct{ Subject string }{Subject: subject})
	if err != nil {
		return nil, errors.NewUnexpected("failed to render inventory query", err)
	}

	response, err := os.client.Search(ctx, os.inventoryIndex, query)
	if err != nil {
		return nil, errors.NewServiceUnavailable("opensearch inventory lookup failed", err)
	}
	if len(response.Hits.Hits) == 0 {
		return nil, nil
	}

	var inventory inventorySource
	if err := json.Unmarshal(response.Hits.Hits[0].Source, &inventory); err != nil {
		return nil, errors.NewUnexpected("failed to decode inventory document", err)
	}
	return inventory.Ingredients, nil
}

// Render executes tmpl with data and checks the result is valid JSON
func Render(ctx context.Context, tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "failed to render query template", "error", err)
		return nil, err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, buf.Bytes()); err != nil {
		slog.ErrorContext(ctx, "rendered query is not valid JSON", "error", err)
		return nil, err
	}
	return compact.Bytes(), nil
}

// convertResponse converts OpenSearch hits to recipes, skipping hits that
// cannot be decoded
func (os *OpenSearchFetcher) convertResponse(ctx context.Context, response *SearchResponse) []model.Recipe {
	recipes := make([]model.Recipe, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		var source recipeSource
		if err := json.Unmarshal(hit.Source, &source); err != nil {
			// Log error but continue processing other hits
			slog.ErrorContext(ctx, "failed to convert hit", "hit_id", hit.ID, "error", err)
			continue
		}
		recipes = append(recipes, model.Recipe{
			ID:               hit.ID,
			Title:            source.Title,
			Image:            source.Img,
			CaloriesPerServe: source.CaloriesPerServe,
			TimesFavorite:    source.TimesFavorite,
			Rating:           source.Calification,
			TotalVotes:       source.TotalVotes,
		})
	}
	return recipes
}

// paginate derives the page metadata the recipe API would return
func paginate(recipes []model.Recipe, total, page, limit int) *model.RecipePage {
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &model.RecipePage{
		Docs:        recipes,
		TotalPages:  totalPages,
		Page:        page,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
}

// NewFetcher returns a new OpenSearchFetcher implementation
func NewFetcher(ctx context.Context, config Config) (*OpenSearchFetcher, error) {

	if config.URL == "" {
		slog.ErrorContext(ctx, "opensearch URL is required")
		return nil, fmt.Errorf("opensearch URL is required")
	}
	if config.Index == "" {
		slog.ErrorContext(ctx, "opensearch index is required")
		return nil, fmt.Errorf("opensearch index is required")
	}
	if config.InventoryIndex == "" {
		config.InventoryIndex = config.Index + "-inventory"
	}

	opensearchClient, errOpensearchClient := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: []string{config.URL},
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: 5 * time.Second,
				DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
			},
		},
	})
	if errOpensearchClient != nil {
		slog.ErrorContext(ctx, "failed to create OpenSearch client", "error", errOpensearchClient)
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", errOpensearchClient)
	}

	return newFetcher(newHTTPClient(opensearchClient, config), config), nil
}

func newFetcher(client OpenSearchClientRetriever, config Config) *OpenSearchFetcher {
	return &OpenSearchFetcher{
		client:         client,
		index:          config.Index,
		inventoryIndex: config.InventoryIndex,
	}
}
