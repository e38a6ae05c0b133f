// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const healthTimeout = 5 * time.Second

type readinessChecker interface {
	IsReady(ctx context.Context) error
}

type componentHealth struct {
	Component string `json:"component"`
	Ready     bool   `json:"ready"`
	Error     string `json:"error,omitempty"`
}

func (a *app) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the recipe source, state store and event channel are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			checks := map[string]readinessChecker{
				"recipes": a.runtime.Fetcher,
				"state":   a.runtime.Store,
			}
			if events, ok := a.runtime.Events.(readinessChecker); ok {
				checks["events"] = events
			}

			report, err := checkReadiness(ctx, checks)
			if a.opts.jsonOutput {
				if errWrite := writeJSON(cmd.OutOrStdout(), report); errWrite != nil {
					return errWrite
				}
			} else {
				for _, component := range report {
					status := "ready"
					if !component.Ready {
						status = "not ready: " + component.Error
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", component.Component, status)
				}
			}
			return err
		},
	}
}

// checkReadiness probes every component concurrently; the report is sorted
// by component name
func checkReadiness(ctx context.Context, checks map[string]readinessChecker) ([]componentHealth, error) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	slices.Sort(names)

	report := make([]componentHealth, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
			defer cancel()

			report[i] = componentHealth{Component: name, Ready: true}
			if err := checks[name].IsReady(checkCtx); err != nil {
				slog.WarnContext(ctx, "component not ready", "component", name, "error", err)
				report[i].Ready = false
				report[i].Error = err.Error()
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, errors.NewServiceUnavailable("health check failed", err)
	}
	return report, nil
}
