// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package recipeapi

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/httpclient"
)

const (
	recipesPath   = "/recipes"
	searchPath    = "/recipes/search"
	inventoryPath = "/recipes/inventory"
	loginPath     = "/users/login"
	foodLogPath   = "/foodlog"
	servingPath   = "/foodlog/serving"
)

// Client represents a recipe API client
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// ListRecipes calls the unfiltered listing endpoint
func (c *Client) ListRecipes(ctx context.Context, page, limit int, token string) (*PaginatedResponse, error) {
	return c.getPage(ctx, recipesPath, pageParams(page, limit), token)
}

// SearchRecipes calls the keyword search endpoint
func (c *Client) SearchRecipes(ctx context.Context, keyword string, page, limit int, token string) (*PaginatedResponse, error) {
	params := pageParams(page, limit)
	params.Set("keyword", keyword)
	return c.getPage(ctx, searchPath, params, token)
}

// InventoryRecipes calls the inventory constrained endpoint
func (c *Client) InventoryRecipes(ctx context.Context, page, limit int, token string) (*PaginatedResponse, error) {
	return c.getPage(ctx, inventoryPath, pageParams(page, limit), token)
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", errors.NewUnexpected("failed to encode login request", err)
	}

	resp, err := c.httpClient.Request(ctx, http.MethodPost, c.config.BaseURL+loginPath, body, nil)
	if err != nil {
		var statusErr *httpclient.StatusError
		if stderrors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusNotFound, http.StatusUnauthorized, http.StatusBadRequest:
				return "", errors.NewValidation(constants.MessageBadCredentials, err)
			}
		}
		return "", errors.NewServiceUnavailable("login request failed", err)
	}

	var login LoginResponse
	if err := resp.DecodeJSON(&login); err != nil {
		return "", errors.NewServiceUnavailable("invalid login response", err)
	}
	if login.Token == "" {
		return "", errors.NewServiceUnavailable("login response carried no token")
	}
	return login.Token, nil
}

// FoodLogByDay reads the food log of day (YYYY-MM-DD). It returns nil when
// the day has no records.
func (c *Client) FoodLogByDay(ctx context.Context, day string, token string) (*FoodLogResponse, error) {
	params := url.Values{}
	params.Set("date", day)

	resp, err := c.get(ctx, foodLogPath, params, token)
	if err != nil {
		var statusErr *httpclient.StatusError
		if stderrors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, mapError(ctx, err)
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}

	var foodLog *FoodLogResponse
	if err := resp.DecodeJSON(&foodLog); err != nil {
		return nil, errors.NewServiceUnavailable("invalid food log", err)
	}
	return foodLog, nil
}

// AddServing logs one serving of recipeID on day (YYYY-MM-DD)
func (c *Client) AddServing(ctx context.Context, recipeID, day string, token string) error {
	body, err := json.Marshal(AddServingRequest{RecipeID: recipeID, Date: day})
	if err != nil {
		return errors.NewUnexpected("failed to encode serving", err)
	}

	ctx, _ = middleware.WithRequestID(ctx)
	_, err = c.httpClient.Request(ctx, http.MethodPost, c.config.BaseURL+servingPath, body, authHeaders(token))
	if err != nil {
		var statusErr *httpclient.StatusError
		if stderrors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return errors.NewNotFound(fmt.Sprintf("recipe %s does not exist", recipeID), err)
		}
		return mapError(ctx, err)
	}
	return nil
}

// getPage performs a GET on a paginated endpoint
func (c *Client) getPage(ctx context.Context, path string, params url.Values, token string) (*PaginatedResponse, error) {
	resp, err := c.get(ctx, path, params, token)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	var page PaginatedResponse
	if err := resp.DecodeJSON(&page); err != nil {
		return nil, errors.NewServiceUnavailable("invalid recipe page", err)
	}
	return &page, nil
}

// get performs an authenticated GET; errors are returned unmapped
func (c *Client) get(ctx context.Context, path string, params url.Values, token string) (*httpclient.Response, error) {
	u, err := url.Parse(c.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.RawQuery = params.Encode()

	ctx, _ = middleware.WithRequestID(ctx)
	return c.httpClient.Request(ctx, http.MethodGet, u.String(), nil, authHeaders(token))
}

func authHeaders(token string) map[string]string {
	return map[string]string{
		constants.AuthorizationHeader: constants.BearerPrefix + token,
	}
}

// mapError translates transport failures into the error taxonomy
func mapError(ctx context.Context, err error) error {
	var statusErr *httpclient.StatusError
	if !stderrors.As(err, &statusErr) {
		return errors.NewServiceUnavailable("recipe API request failed", err)
	}

	switch statusErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.NewUnauthenticated("recipe API rejected the session token", err)
	default:
		slog.DebugContext(ctx, "recipe API returned an error status",
			"status", statusErr.StatusCode,
			"message", apiMessage(statusErr.Message),
		)
		return errors.NewServiceUnavailable(fmt.Sprintf("recipe API returned status %d", statusErr.StatusCode), err)
	}
}

// apiMessage extracts the message field of an error body, falling back to
// the raw body.
func apiMessage(body string) string {
	var resp ErrorResponse
	if err := json.Unmarshal([]byte(body), &resp); err == nil && resp.Message != "" {
		return resp.Message
	}
	return body
}

func pageParams(page, limit int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	return params
}

// IsReady checks if the recipe API is reachable. Any answer below 500
// means the service is up.
func (c *Client) IsReady(ctx context.Context) error {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, c.config.BaseURL, nil, nil)
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	if stderrors.As(err, &statusErr) && !statusErr.Retryable() && resp != nil {
		return nil
	}
	return errors.NewServiceUnavailable("recipe API is not reachable", err)
}

// NewClient creates a new recipe API client
func NewClient(config Config) *Client {
	httpConfig := httpclient.Config{
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryDelay:   config.RetryDelay,
		RetryBackoff: true,
		RateLimit:    config.RateLimit,
		RateBurst:    int(config.RateLimit) + 1,
		Transport:    middleware.RequestIDTransport(nil),
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}
}
