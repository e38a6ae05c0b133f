// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package tui is the interactive terminal front end of the recipe search.
package tui

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchController drives the search session
type SearchController interface {
	Submit(ctx context.Context, query model.SearchQuery) error
	GoNext(ctx context.Context) error
	GoPrevious(ctx context.Context) error
	Select(ctx context.Context, recipeID string) error
	Snapshot() model.SearchView
}

// ResultsReader reads the shared result collection
type ResultsReader interface {
	Results() []model.Recipe
}

// Authenticator signs the user in
type Authenticator interface {
	Login(ctx context.Context, email, password string) error
}

type screen int

const (
	screenSearch screen = iota
	screenSignIn
)

type focus int

const (
	focusInput focus = iota
	focusResults
)

const (
	fieldEmail = iota
	fieldPassword
)

// chrome is the number of lines around the results viewport
const chrome = 9

// Model is the bubbletea model of the application
type Model struct {
	ctx        context.Context
	controller SearchController
	results    ResultsReader
	auth       Authenticator
	keys       KeyMap
	styles     Styles

	screen    screen
	focus     focus
	keyword   textinput.Model
	inventory bool

	email       textinput.Model
	password    textinput.Model
	signInField int
	signInError string

	viewport viewport.Model
	recipes  []model.Recipe
	cursor   int
	view     model.SearchView
	loading  bool
	status   string
	selected string

	width  int
	height int
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.screen == screenSignIn {
			return m.handleSignInKey(msg)
		}
		return m.handleSearchKey(msg)

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case scrollTopMsg:
		m.cursor = 0
		m.viewport.GotoTop()
		return m, nil

	case selectedMsg:
		if msg.err != nil {
			m.status = userMessage(msg.err)
			return m, nil
		}
		m.selected = msg.recipeID
		m.status = ""
		m.renderResults()
		return m, nil

	case signedInMsg:
		if msg.err != nil {
			m.signInError = userMessage(msg.err)
			return m, nil
		}
		m.signInError = ""
		m.password.SetValue("")
		m.screen = screenSearch
		m.status = "Signed in"
		return m, m.focusKeyword()
	}

	return m.forward(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.navigate(m.controller.GoNext)
	case key.Matches(msg, m.keys.Previous):
		return m, m.navigate(m.controller.GoPrevious)
	case key.Matches(msg, m.keys.ToggleInventory):
		m.inventory = !m.inventory
		return m, nil
	}

	if m.focus == focusInput {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keys.Back):
			if len(m.recipes) > 0 {
				m.focusResultList()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.keyword, cmd = m.keyword.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Submit):
		return m, m.selectCurrent()
	case key.Matches(msg, m.keys.FocusInput), key.Matches(msg, m.keys.Back):
		return m, m.focusKeyword()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenSearch
		return m, m.focusKeyword()
	case "tab", "down", "shift+tab", "up":
		return m, m.switchSignInField()
	case "enter":
		if m.signInField == fieldEmail {
			return m, m.switchSignInField()
		}
		return m, m.signIn()
	}

	var cmd tea.Cmd
	if m.signInField == fieldEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.refresh()

	if msg.err == nil {
		m.status = ""
		if len(m.recipes) > 0 && m.focus == focusInput {
			m.focusResultList()
		}
		return m, nil
	}

	var unauthenticated errors.Unauthenticated
	if stderrors.As(msg.err, &unauthenticated) {
		slog.InfoContext(m.ctx, "session is not signed in, showing sign-in screen")
		m.screen = screenSignIn
		m.signInError = constants.MessageSignInRequired
		m.signInField = fieldEmail
		m.keyword.Blur()
		m.password.Blur()
		return m, m.email.Focus()
	}

	// service failures surface through the coordinator notice
	if m.view.Notice == nil {
		m.status = userMessage(msg.err)
	}
	return m, nil
}

// forward passes non-key messages to the focused input, e.g. cursor blinks
func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == screenSignIn && m.signInField == fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case m.screen == screenSignIn:
		m.password, cmd = m.password.Update(msg)
	case m.focus == focusInput:
		m.keyword, cmd = m.keyword.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true

	ctx, controller := m.ctx, m.controller
	query := model.SearchQuery{Keyword: m.keyword.Value(), UseInventory: m.inventory}
	return func() tea.Msg {
		return pageLoadedMsg{err: controller.Submit(ctx, query)}
	}
}

func (m *Model) navigate(move func(context.Context) error) tea.Cmd {
	if m.loading || m.view.State == model.StateIdle {
		return nil
	}
	m.loading = true

	ctx := m.ctx
	return func() tea.Msg {
		return pageLoadedMsg{err: move(ctx)}
	}
}

func (m *Model) selectCurrent() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.recipes) {
		return nil
	}

	ctx, controller := m.ctx, m.controller
	recipeID := m.recipes[m.cursor].ID
	return func() tea.Msg {
		return selectedMsg{recipeID: recipeID, err: controller.Select(ctx, recipeID)}
	}
}

func (m *Model) signIn() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	email, password := m.email.Value(), m.password.Value()
	return func() tea.Msg {
		return signedInMsg{err: auth.Login(ctx, email, password)}
	}
}

func (m *Model) switchSignInField() tea.Cmd {
	if m.signInField == fieldEmail {
		m.signInField = fieldPassword
		m.email.Blur()
		return m.password.Focus()
	}
	m.signInField = fieldEmail
	m.password.Blur()
	return m.email.Focus()
}

func (m *Model) focusKeyword() tea.Cmd {
	m.focus = focusInput
	m.renderResults()
	return m.keyword.Focus()
}

func (m *Model) focusResultList() {
	m.focus = focusResults
	m.keyword.Blur()
	m.renderResults()
}

// refresh reloads the session snapshot and the shared results
func (m *Model) refresh() {
	m.view = m.controller.Snapshot()
	m.recipes = m.results.Results()
	if m.cursor >= len(m.recipes) {
		m.cursor = 0
	}
	m.renderResults()
}

func (m *Model) moveCursor(step int) {
	if len(m.recipes) == 0 {
		return
	}
	m.cursor += step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.recipes) {
		m.cursor = len(m.recipes) - 1
	}

	// keep the cursor line visible
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
	m.renderResults()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-chrome, 3)
	m.keyword.Width = max(width-20, 10)
	m.renderResults()
}

// Selected returns the id of the last selected recipe
func (m *Model) Selected() string {
	return m.selected
}

// NewModel creates the application model; ctx is used for every
// coordinator call.
func NewModel(ctx context.Context, controller SearchController, results ResultsReader, auth Authenticator) *Model {
	keyword := textinput.New()
	keyword.Placeholder = "Search recipes by keyword..."
	keyword.CharLimit = 100
	keyword.Focus()

	email := textinput.New()
	email.Placeholder = "email"

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := &Model{
		ctx:        ctx,
		controller: controller,
		results:    results,
		auth:       auth,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		screen:     screenSearch,
		focus:      focusInput,
		keyword:    keyword,
		email:      email,
		password:   password,
		viewport:   viewport.New(76, 15),
		view:       controller.Snapshot(),
	}
	m.renderResults()
	return m
}
