// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/log"
)

// Coordinator owns a search session: which query mode is active, where the
// user is in the result set, and publication of each fetched page.
//
// State only changes through Submit, GoNext, GoPrevious and Restore. Remote
// calls run without holding the lock; every request is tagged with a
// generation number and a completion that is no longer the latest request is
// discarded.
type Coordinator struct {
	fetcher   port.RecipeFetcher
	session   port.SessionReader
	publisher *ResultPublisher
	viewport  port.Viewport

	mu         sync.Mutex
	limit      int
	state      model.SearchState
	query      model.SearchQuery
	mode       model.QueryMode
	page       model.PageState
	notice     *model.Notice
	generation uint64
}

type pageRequest struct {
	query      model.SearchQuery
	mode       model.QueryMode
	page       int
	limit      int
	generation uint64
	scroll     bool
}

// Submit starts a new search at the first page.
func (c *Coordinator) Submit(ctx context.Context, query model.SearchQuery) error {
	query = query.Normalize()

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	req := c.newRequestLocked(query, selectMode(query), constants.FirstPage, false)
	c.mu.Unlock()

	slog.DebugContext(ctx, "submitting recipe search",
		"mode", req.mode.String(),
		"keyword", req.query.Keyword,
		"generation", req.generation,
	)

	return c.execute(ctx, req, token)
}

// GoNext loads the page after the current one. It does nothing unless the
// last response reported a next page.
func (c *Coordinator) GoNext(ctx context.Context) error {
	return c.navigate(ctx, 1)
}

// GoPrevious loads the page before the current one. It does nothing unless
// the last response reported a previous page.
func (c *Coordinator) GoPrevious(ctx context.Context) error {
	return c.navigate(ctx, -1)
}

func (c *Coordinator) navigate(ctx context.Context, step int) error {
	if !c.canMove(step) {
		slog.DebugContext(ctx, "page navigation ignored, no page in that direction",
			"step", step,
		)
		return nil
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if !c.canMoveLocked(step) {
		c.mu.Unlock()
		return nil
	}
	req := c.newRequestLocked(c.query, c.mode, c.page.Page+step, true)
	c.mu.Unlock()

	slog.DebugContext(ctx, "navigating recipe results",
		"mode", req.mode.String(),
		"target_page", req.page,
		"generation", req.generation,
	)

	return c.execute(ctx, req, token)
}

// Select records the recipe chosen for detail viewing. It does not touch
// the pagination state.
func (c *Coordinator) Select(ctx context.Context, recipeID string) error {
	return c.publisher.Select(ctx, recipeID)
}

// Restore resumes a session from a cursor produced by Cursor, typically in a
// later process. Any in-flight request is superseded.
func (c *Coordinator) Restore(ctx context.Context, cursor model.Cursor) error {
	mode, ok := model.ParseQueryMode(cursor.Mode)
	if !ok {
		return errors.NewValidation("invalid cursor query mode: " + cursor.Mode)
	}
	if cursor.Page < constants.FirstPage || cursor.Limit <= 0 {
		return errors.NewValidation("invalid cursor position")
	}

	query := model.SearchQuery{Keyword: cursor.Keyword, UseInventory: mode == model.ModeInventory}.Normalize()
	if selectMode(query) != mode {
		return errors.NewValidation("cursor keyword does not match its query mode")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	limit := clampLimit(cursor.Limit)

	c.generation++
	c.query = query
	c.mode = mode
	c.limit = limit
	c.page = model.PageState{
		Page:       cursor.Page,
		Limit:      limit,
		HasPrev:    cursor.HasPrev,
		HasNext:    cursor.HasNext,
		TotalPages: copyInt(cursor.TotalPages),
	}
	c.state = model.StateLoaded
	c.notice = nil
	if cursor.Empty {
		c.state = model.StateEmpty
		c.notice = &model.Notice{Kind: model.NoticeInfo, Message: constants.MessageNoRecipes}
	}

	slog.DebugContext(ctx, "search session restored",
		"mode", mode.String(),
		"page", cursor.Page,
	)
	return nil
}

// Cursor returns the current position; ok is false while no page was loaded.
func (c *Coordinator) Cursor() (cursor model.Cursor, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == model.StateIdle {
		return model.Cursor{}, false
	}
	return model.Cursor{
		Mode:       c.mode.String(),
		Keyword:    c.query.Keyword,
		Page:       c.page.Page,
		Limit:      c.page.Limit,
		HasPrev:    c.page.HasPrev,
		HasNext:    c.page.HasNext,
		TotalPages: copyInt(c.page.TotalPages),
		Empty:      c.state == model.StateEmpty,
	}, true
}

// Snapshot returns a copy of the session state.
func (c *Coordinator) Snapshot() model.SearchView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := model.SearchView{
		State:      c.state,
		Query:      c.query,
		Mode:       c.mode,
		Page:       c.page,
		Generation: c.generation,
	}
	view.Page.TotalPages = copyInt(c.page.TotalPages)
	if c.notice != nil {
		notice := *c.notice
		view.Notice = &notice
	}
	return view
}

// token reads the session token. A session store failure is reported on
// the notice like any other failed request.
func (c *Coordinator) token(ctx context.Context) (string, error) {
	token, err := sessionToken(ctx, c.session)
	if err == nil {
		return token, nil
	}

	var unauthenticated errors.Unauthenticated
	if !stderrors.As(err, &unauthenticated) {
		c.mu.Lock()
		c.notice = &model.Notice{Kind: model.NoticeError, Message: constants.MessageServiceUnavailable}
		c.mu.Unlock()
	}
	return "", err
}

// sessionToken reads the session token from session. Only a missing or
// expired token is Unauthenticated; a session store that cannot be read
// keeps its own error kind.
func sessionToken(ctx context.Context, session port.SessionReader) (string, error) {
	token, err := session.Token(ctx)
	if err == nil && token != "" {
		return token, nil
	}
	if err == nil {
		return "", errors.NewUnauthenticated("session token is missing")
	}

	var (
		unauthenticated errors.Unauthenticated
		unavailable     errors.ServiceUnavailable
		unexpected      errors.Unexpected
	)
	switch {
	case stderrors.As(err, &unauthenticated):
		return "", err
	case stderrors.As(err, &unavailable), stderrors.As(err, &unexpected):
		slog.ErrorContext(ctx, "failed to read session token", "error", err)
		return "", err
	default:
		slog.ErrorContext(ctx, "failed to read session token", "error", err)
		return "", errors.NewServiceUnavailable("session store unavailable", err)
	}
}

func (c *Coordinator) canMove(step int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canMoveLocked(step)
}

func (c *Coordinator) canMoveLocked(step int) bool {
	if step > 0 {
		return c.page.HasNext
	}
	return c.page.HasPrev && c.page.Page > constants.FirstPage
}

func (c *Coordinator) newRequestLocked(query model.SearchQuery, mode model.QueryMode, page int, scroll bool) pageRequest {
	c.generation++
	return pageRequest{
		query:      query,
		mode:       mode,
		page:       page,
		limit:      c.limit,
		generation: c.generation,
		scroll:     scroll,
	}
}

func (c *Coordinator) execute(ctx context.Context, req pageRequest, token string) error {
	ctx = log.AppendCtx(ctx, slog.String("query_mode", req.mode.String()))
	ctx = log.AppendCtx(ctx, slog.Int("page", req.page))

	result, errFetch := fetchPage(ctx, c.fetcher, req.mode, req.query.Keyword, req.page, req.limit, token)

	c.mu.Lock()
	if req.generation != c.generation {
		c.mu.Unlock()
		slog.DebugContext(ctx, "discarding stale search response",
			"generation", req.generation,
		)
		return nil
	}

	if errFetch != nil || result == nil {
		err := c.failLocked(ctx, errFetch)
		c.mu.Unlock()
		return err
	}

	docs := result.Docs
	if docs == nil {
		docs = []model.Recipe{}
	}

	// replace results while holding the lock so publications follow request order
	event, err := c.publisher.Publish(ctx, req.mode, req.page, docs)
	if err != nil {
		c.notice = &model.Notice{Kind: model.NoticeError, Message: constants.MessageServiceUnavailable}
		c.mu.Unlock()
		return err
	}

	c.commitLocked(req, result, len(docs))
	c.mu.Unlock()

	c.publisher.Emit(ctx, event)

	slog.InfoContext(ctx, "recipe page loaded",
		"results", len(docs),
		"has_prev", result.HasPrevPage,
		"has_next", result.HasNextPage,
	)

	// outside the lock: a front end may read the snapshot while scrolling
	if req.scroll && c.viewport != nil {
		c.viewport.ScrollToTop(ctx)
	}
	return nil
}

func (c *Coordinator) failLocked(ctx context.Context, errFetch error) error {
	var unauthenticated errors.Unauthenticated
	if stderrors.As(errFetch, &unauthenticated) {
		slog.WarnContext(ctx, "recipe service rejected the session token", "error", errFetch)
		return unauthenticated
	}

	if errFetch == nil {
		errFetch = stderrors.New("recipe service returned no page")
	}
	slog.ErrorContext(ctx, "recipe query failed", "error", errFetch)
	c.notice = &model.Notice{Kind: model.NoticeError, Message: constants.MessageServiceUnavailable}

	var unavailable errors.ServiceUnavailable
	if stderrors.As(errFetch, &unavailable) {
		return unavailable
	}
	return errors.NewServiceUnavailable("recipe service unavailable", errFetch)
}

func (c *Coordinator) commitLocked(req pageRequest, result *model.RecipePage, count int) {
	page := result.Page
	if page < constants.FirstPage {
		page = req.page
	}
	totalPages := result.TotalPages

	c.query = req.query
	c.mode = req.mode
	c.page = model.PageState{
		Page:       page,
		Limit:      req.limit,
		HasPrev:    result.HasPrevPage,
		HasNext:    result.HasNextPage,
		TotalPages: &totalPages,
	}

	if count == 0 {
		c.state = model.StateEmpty
		c.notice = &model.Notice{Kind: model.NoticeInfo, Message: constants.MessageNoRecipes}
		return
	}
	c.state = model.StateLoaded
	c.notice = nil
}

// clampLimit maps a non-positive limit to the default page size and caps it
// at the largest page the recipe service serves
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return constants.DefaultPageSize
	case limit > constants.MaxPageSize:
		return constants.MaxPageSize
	}
	return limit
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// NewCoordinator creates a Coordinator in the Idle state. A non-positive
// limit falls back to the default page size; viewport may be nil.
func NewCoordinator(fetcher port.RecipeFetcher,
	session port.SessionReader,
	publisher *ResultPublisher,
	viewport port.Viewport,
	limit int,
) *Coordinator {
	limit = clampLimit(limit)
	return &Coordinator{
		fetcher:   fetcher,
		session:   session,
		publisher: publisher,
		viewport:  viewport,
		limit:     limit,
		state:     model.StateIdle,
		page: model.PageState{
			Page:  constants.FirstPage,
			Limit: limit,
		},
	}
}
