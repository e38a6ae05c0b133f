// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package cli holds the cobra commands of the recipe-search binary.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/linuxfoundation/lfx-v2-recipe-search/cmd/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/middleware"
	usecase "github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/global"
	logging "github.com/linuxfoundation/lfx-v2-recipe-search/pkg/log"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/paging"

	"github.com/spf13/cobra"
)

const logFileName = "recipe-search.log"

// RuntimeBuilder creates the port implementations once the configuration
// is loaded
type RuntimeBuilder func(ctx context.Context, cfg service.Config) (*service.Runtime, error)

type options struct {
	configPath string
	jsonOutput bool
	showCursor bool
	debug      bool
}

type app struct {
	build   RuntimeBuilder
	opts    options
	config  service.Config
	runtime *service.Runtime
	logFile io.Closer
}

func newApp(build RuntimeBuilder) *app {
	return &app{build: build}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "recipe-search",
		Short: "Search recipes by keyword or by what is in your inventory",
		Long: `recipe-search lists recipes from the recipe service.

A keyword narrows the list by title, --inventory restricts it to recipes you
can cook with your stored ingredients. The position of the last search is
kept between runs so next and prev continue where search left off.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "config file (default ~/.recipe-search/config.toml)")
	flags.BoolVar(&a.opts.jsonOutput, "json", false, "print results as JSON")
	flags.BoolVar(&a.opts.showCursor, "show-cursor", false, "print the encrypted search cursor after each page")
	flags.BoolVarP(&a.opts.debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(
		a.searchCommand(),
		a.nextCommand(),
		a.prevCommand(),
		a.selectCommand(),
		a.resultsCommand(),
		a.mealsCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.healthCommand(),
		a.tuiCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := service.LoadConfig(a.opts.configPath)
	if err != nil {
		return err
	}
	a.config = cfg

	if err := a.initLogging(cmd); err != nil {
		return err
	}

	ctx, requestID := middleware.WithRequestID(cmd.Context())
	ctx = logging.AppendCtx(ctx, slog.String("command", cmd.Name()))
	cmd.SetContext(ctx)

	slog.DebugContext(ctx, "configuration loaded",
		"recipe_source", cfg.Recipe.Source,
		"state_source", cfg.State.Source,
		"events_source", cfg.Events.Source,
		"invocation_id", requestID,
	)

	rt, err := a.build(ctx, cfg)
	if err != nil {
		return err
	}
	a.runtime = rt
	return nil
}

// initLogging sends logs to stderr, or to a file when one is configured.
// The TUI owns the terminal and always logs to a file.
func (a *app) initLogging(cmd *cobra.Command) error {
	level := a.config.Log.Level
	if a.opts.debug {
		level = "debug"
	}

	path := a.config.Log.File
	if path == "" && cmd.Name() == "tui" {
		dir := a.config.State.Dir
		if dir == "" {
			defaultDir, err := service.DefaultConfigPath()
			if err != nil {
				return errors.NewUnexpected("failed to resolve log directory", err)
			}
			dir = filepath.Dir(defaultDir)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.NewUnexpected("failed to create log directory", err)
		}
		path = filepath.Join(dir, logFileName)
	}

	if path == "" {
		logging.InitStructureLogConfig(logging.Options{Output: cmd.ErrOrStderr(), Level: level})
		return nil
	}

	file, err := logging.OpenFile(path)
	if err != nil {
		return errors.NewUnexpected("failed to open log file", err)
	}
	a.logFile = file
	logging.InitStructureLogConfig(logging.Options{Output: file, Level: level})
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.runtime != nil {
		a.runtime.Close(ctx)
		a.runtime = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) coordinator(out io.Writer, limit int) *usecase.Coordinator {
	if limit <= 0 {
		limit = a.config.Recipe.PageSize
	}
	publisher := usecase.NewResultPublisher(a.runtime.Store, a.runtime.Events)
	return usecase.NewCoordinator(a.runtime.Fetcher, a.runtime.Store, publisher, newTerminal(out), limit)
}

func (a *app) sealCursor(ctx context.Context, cursor model.Cursor) (string, error) {
	return paging.EncodeToken(cursor, global.CursorSecret(ctx, a.config.CursorSecret))
}

func (a *app) openCursor(ctx context.Context, sealed string) (model.Cursor, error) {
	var cursor model.Cursor
	if err := paging.DecodeToken(ctx, sealed, global.CursorSecret(ctx, a.config.CursorSecret), &cursor); err != nil {
		return model.Cursor{}, errors.NewValidation("The search cursor is not valid, run a new search", err)
	}
	return cursor, nil
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context) int {
	a := newApp(service.NewRuntime)
	defer a.close(ctx)

	root := a.command()
	err := root.ExecuteContext(ctx)
	return service.ReportError(ctx, root.ErrOrStderr(), err)
}
